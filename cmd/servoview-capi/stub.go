package main

import (
	"log"

	"github.com/gazed/servoview/engine"
	"github.com/gazed/servoview/glfn"
	"github.com/gazed/servoview/glfwapi"
	"github.com/gazed/servoview/rendercontext"
)

// glContextFactory and webEngineFactory are the two out-of-scope
// collaborators §1 leaves to the embedder. The defaults below keep this
// command linkable and able to exercise the full ABI surface end to
// end against fakes, the same shape engine's own tests use
// (engine_test.go's fakeGL/fakeWebEngine) — they allocate incrementing
// object names and never touch a real GPU or a real web engine. A real
// deployment overwrites this file with its platform GL loader (backed
// by the GetProcAddress entry of the table servoview_set_glfw_api just
// installed) and its embedded web engine.
var (
	glContextFactory engine.GLContextFactory = stubGLContextFactory
	webEngineFactory engine.WebEngineFactory = stubWebEngineFactory
)

type stubGL struct {
	next uint32
}

func (g *stubGL) genNames(n int32, out []uint32) {
	for i := range out[:n] {
		g.next++
		out[i] = g.next
	}
}

func (g *stubGL) GenFramebuffers(n int32, out []uint32)    { g.genNames(n, out) }
func (g *stubGL) DeleteFramebuffers(n int32, ids []uint32) {}
func (g *stubGL) BindFramebuffer(target, fbo uint32)       {}
func (g *stubGL) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
}
func (g *stubGL) FramebufferRenderbuffer(target, attachment, rbTarget, renderbuffer uint32) {}
func (g *stubGL) CheckFramebufferStatus(target uint32) uint32 { return glfn.FramebufferComplete }

func (g *stubGL) GenTextures(n int32, out []uint32)    { g.genNames(n, out) }
func (g *stubGL) DeleteTextures(n int32, ids []uint32) {}
func (g *stubGL) BindTexture(target, texture uint32)   {}
func (g *stubGL) TexImage2D(target uint32, level, internalFormat int32, width, height, border int32, format, xtype uint32, pixels []byte) {
}
func (g *stubGL) TexParameteri(target, pname uint32, param int32) {}

func (g *stubGL) GenRenderbuffers(n int32, out []uint32)    { g.genNames(n, out) }
func (g *stubGL) DeleteRenderbuffers(n int32, ids []uint32) {}
func (g *stubGL) BindRenderbuffer(target, renderbuffer uint32) {}
func (g *stubGL) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
}

func (g *stubGL) FenceSync(condition, flags uint32) glfn.Sync { g.next++; return glfn.Sync(g.next) }
func (g *stubGL) DeleteSync(sync glfn.Sync)                   {}
func (g *stubGL) ClientWaitSync(sync glfn.Sync, flags uint32, timeoutNanos uint64) uint32 {
	return glfn.AlreadySignaled
}
func (g *stubGL) Flush() {}

func (g *stubGL) Enable(cap uint32)                  {}
func (g *stubGL) Disable(cap uint32)                 {}
func (g *stubGL) Viewport(x, y, width, height int32) {}
func (g *stubGL) GetIntegerv(pname uint32, out []int32) {
}
func (g *stubGL) GetString(name uint32) string { return "" }
func (g *stubGL) ReadPixels(x, y, width, height int32, format, xtype uint32, out []byte) {
}

func stubGLContextFactory(table glfwapi.Table, sharedWindow glfwapi.Window, supportsSRGB bool) (glfn.API, error) {
	log.Printf("servoview-capi: using stub GL context; link a real platform GL loader for production")
	return &stubGL{}, nil
}

type stubWebView struct{}

func (stubWebView) Show()                                        {}
func (stubWebView) Hide()                                        {}
func (stubWebView) SetThrottled(bool)                            {}
func (stubWebView) Resize(width, height uint32)                  {}
func (stubWebView) Load(url string)                              {}
func (stubWebView) NotifyInputEvent(engine.TranslatedInputEvent) {}
func (stubWebView) Paint()                                       {}

type stubWebEngine struct{}

func (stubWebEngine) SpinEventLoop() {}
func (stubWebEngine) CreateWebView(ctx *rendercontext.Context, delegate engine.WebViewDelegate) engine.WebView {
	return stubWebView{}
}
func (stubWebEngine) Shutdown() {}

func stubWebEngineFactory(opts engine.WebEngineOptions) (engine.WebEngine, error) {
	log.Printf("servoview-capi: using stub web engine; link a real embedded web engine for production")
	return stubWebEngine{}, nil
}
