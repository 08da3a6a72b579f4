package engine

import (
	"github.com/gazed/servoview/rendercontext"
)

// EventLoopWaker is installed into the embedded web engine so it can
// request a spin even while the engine thread is parked. Wake must be
// safe to call from any thread, including the web engine's own internal
// threads.
type EventLoopWaker interface {
	Wake()
}

// WebViewDelegate receives callbacks the embedded web engine makes while
// painting a particular webview. engineDelegate (engine.go) is the
// implementation that drives paint/present; this interface exists so a
// fake WebEngine in tests can exercise the same wiring.
type WebViewDelegate interface {
	NotifyNewFrameReady(wv WebView)
}

// WebView is the per-view handle the embedded web engine returns from
// WebEngine.CreateWebView. Method set matches §6's summary of the
// embedded web-engine interface.
type WebView interface {
	Show()
	Hide()
	SetThrottled(bool)
	Resize(width, height uint32)
	Load(url string)
	NotifyInputEvent(event TranslatedInputEvent)
	Paint()
}

// WebEngine is the out-of-scope black box §1 treats the embedded web
// engine as: this module never constructs one directly, only through a
// host-supplied WebEngineFactory, and only ever calls the handful of
// methods the orchestrator in §4.5 needs.
type WebEngine interface {
	// SpinEventLoop performs one cooperative tick of the web engine's
	// internal event loop (timers, layout, script, paint scheduling).
	SpinEventLoop()

	// CreateWebView builds a webview bound to ctx, delivering paint
	// callbacks to delegate.
	CreateWebView(ctx *rendercontext.Context, delegate WebViewDelegate) WebView

	// Shutdown tears down any internal state. Called once, from the
	// engine thread, after every view has been destroyed.
	Shutdown()
}

// WebEngineOptions carries the construction parameters §4.5 Phase A's
// engine-thread startup reads once: resources/config directories and
// the waker the web engine must invoke to request a spin.
type WebEngineOptions struct {
	ResourcesDir string
	ConfigDir    string
	Waker        EventLoopWaker
}

// WebEngineFactory constructs the black-box web engine; the host
// supplies one to New the same way it supplies a glfwapi.Table — this
// module has no concrete web engine of its own.
type WebEngineFactory func(opts WebEngineOptions) (WebEngine, error)
