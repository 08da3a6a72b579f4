// Command servoview-capi builds the cgo C ABI surface described in §6:
// thin extern "C" marshalling of POD structs and C strings around the
// engine/view/frame operations the rest of this module implements. It
// is grounded on original_source's src/ffi/{abi,engine,glfw,input,frame,view}.rs,
// one Go file per Rust file of the same name.
//
// Building this command with `go build -buildmode=c-shared` produces a
// shared library (plus a generated header) an embedder links against
// from C, C++, or any FFI that can call a C ABI.
//
// glContextFactory and webEngineFactory (stub.go) are the two
// out-of-scope collaborators §1 leaves to the embedder: the platform GL
// loader and the embedded web engine itself. The stand-ins wired in by
// default keep this command buildable and exercise every operation
// below against a fake, the same fakes engine's own tests use; a real
// deployment replaces stub.go with its platform GL loader and its
// embedded web engine before building.
package main
