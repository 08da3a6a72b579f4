package main

// main is unused when this command is built with `go build
// -buildmode=c-shared` (the embedder drives everything through the
// exported C functions below), but c-shared still requires one.
func main() {}
