package engine

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gazed/servoview/coalesce"
	"github.com/gazed/servoview/glfn"
	"github.com/gazed/servoview/glfwapi"
	"github.com/gazed/servoview/rendercontext"
	"github.com/gazed/servoview/view"
)

// fakeGL is a minimal glfn.API that hands out incrementing object names
// and never touches real GPU state, standing in for a host GL driver in
// tests.
type fakeGL struct {
	next uint32
}

func (g *fakeGL) genNames(n int32, out []uint32) {
	for i := range out[:n] {
		g.next++
		out[i] = g.next
	}
}

func (g *fakeGL) GenFramebuffers(n int32, out []uint32)             { g.genNames(n, out) }
func (g *fakeGL) DeleteFramebuffers(n int32, ids []uint32)          {}
func (g *fakeGL) BindFramebuffer(target uint32, fbo uint32)         {}
func (g *fakeGL) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
}
func (g *fakeGL) FramebufferRenderbuffer(target, attachment, rbTarget, renderbuffer uint32) {}
func (g *fakeGL) CheckFramebufferStatus(target uint32) uint32                              { return glfn.FramebufferComplete }

func (g *fakeGL) GenTextures(n int32, out []uint32)    { g.genNames(n, out) }
func (g *fakeGL) DeleteTextures(n int32, ids []uint32) {}
func (g *fakeGL) BindTexture(target, texture uint32)   {}
func (g *fakeGL) TexImage2D(target uint32, level int32, internalFormat int32, width, height, border int32, format, xtype uint32, pixels []byte) {
}
func (g *fakeGL) TexParameteri(target, pname uint32, param int32) {}

func (g *fakeGL) GenRenderbuffers(n int32, out []uint32)                             { g.genNames(n, out) }
func (g *fakeGL) DeleteRenderbuffers(n int32, ids []uint32)                          {}
func (g *fakeGL) BindRenderbuffer(target, renderbuffer uint32)                       {}
func (g *fakeGL) RenderbufferStorage(target, internalFormat uint32, width, height int32) {}

func (g *fakeGL) FenceSync(condition, flags uint32) glfn.Sync { g.next++; return glfn.Sync(g.next) }
func (g *fakeGL) DeleteSync(sync glfn.Sync)                   {}
func (g *fakeGL) ClientWaitSync(sync glfn.Sync, flags uint32, timeoutNanos uint64) uint32 {
	return glfn.AlreadySignaled
}
func (g *fakeGL) Flush() {}

func (g *fakeGL) Enable(cap uint32)  {}
func (g *fakeGL) Disable(cap uint32) {}
func (g *fakeGL) Viewport(x, y, width, height int32) {}
func (g *fakeGL) GetIntegerv(pname uint32, out []int32) {}
func (g *fakeGL) GetString(name uint32) string { return "" }
func (g *fakeGL) ReadPixels(x, y, width, height int32, format, xtype uint32, out []byte) {}

func fakeGLContextFactory(table glfwapi.Table, sharedWindow glfwapi.Window, supportsSRGB bool) (glfn.API, error) {
	return &fakeGL{}, nil
}

// fakeWebView records every call made on it for test assertions.
type fakeWebView struct {
	mu         sync.Mutex
	shown      bool
	throttled  bool
	width      uint32
	height     uint32
	lastURL    string
	events     []TranslatedInputEvent
	paintCount int
}

func (v *fakeWebView) Show()                 { v.mu.Lock(); v.shown = true; v.mu.Unlock() }
func (v *fakeWebView) Hide()                 { v.mu.Lock(); v.shown = false; v.mu.Unlock() }
func (v *fakeWebView) SetThrottled(t bool)   { v.mu.Lock(); v.throttled = t; v.mu.Unlock() }
func (v *fakeWebView) Resize(w, h uint32)    { v.mu.Lock(); v.width, v.height = w, h; v.mu.Unlock() }
func (v *fakeWebView) Load(url string)       { v.mu.Lock(); v.lastURL = url; v.mu.Unlock() }
func (v *fakeWebView) Paint()                { v.mu.Lock(); v.paintCount++; v.mu.Unlock() }
func (v *fakeWebView) NotifyInputEvent(ev TranslatedInputEvent) {
	v.mu.Lock()
	v.events = append(v.events, ev)
	v.mu.Unlock()
}

func (v *fakeWebView) snapshot() fakeWebView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return fakeWebView{shown: v.shown, throttled: v.throttled, width: v.width, height: v.height, lastURL: v.lastURL, events: append([]TranslatedInputEvent(nil), v.events...), paintCount: v.paintCount}
}

type fakeWebEngine struct {
	spins atomic.Int32

	mu    sync.Mutex
	views []*fakeWebView
}

func (e *fakeWebEngine) SpinEventLoop() { e.spins.Add(1) }
func (e *fakeWebEngine) CreateWebView(ctx *rendercontext.Context, delegate WebViewDelegate) WebView {
	v := &fakeWebView{}
	e.mu.Lock()
	e.views = append(e.views, v)
	e.mu.Unlock()
	return v
}

// lastWebView returns the most recently created webview.
func (e *fakeWebEngine) lastWebView() *fakeWebView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.views[len(e.views)-1]
}

// waitForEvents polls wv until it has recorded at least n input events or
// a second has passed, and returns what it recorded.
func waitForEvents(wv *fakeWebView, n int) []TranslatedInputEvent {
	deadline := time.Now().Add(time.Second)
	for {
		events := wv.snapshot().events
		if len(events) >= n || !time.Now().Before(deadline) {
			return events
		}
		time.Sleep(time.Millisecond)
	}
}
func (e *fakeWebEngine) Shutdown() {}

func fakeWebEngineFactory(opts WebEngineOptions) (WebEngine, error) {
	return &fakeWebEngine{}, nil
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(glfwapi.Table{}, nil, fakeGLContextFactory, fakeWebEngineFactory)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(e.Shutdown)
	return e
}

func TestCreateDestroyRoundTrip(t *testing.T) {
	e := newTestEngine(t)

	handle, err := e.CreateView(view.CreateViewParams{
		InitialWidth:  200,
		InitialHeight: 150,
		TargetFPS:     0,
	}, time.Second)
	if err != nil {
		t.Fatalf("CreateView: %v", err)
	}
	if handle.ID() != 1 {
		t.Errorf("first view ID = %d, want 1", handle.ID())
	}

	handle.Close()
	// Close only posts DestroyView; give the engine thread a moment to
	// drain it before asserting that a second CreateView reuses the freed ID.
	time.Sleep(20 * time.Millisecond)

	second, err := e.CreateView(view.CreateViewParams{InitialWidth: 200, InitialHeight: 150}, time.Second)
	if err != nil {
		t.Fatalf("second CreateView: %v", err)
	}
	defer second.Close()
	if second.ID() != 1 {
		t.Errorf("second view ID = %d, want 1 (reused from the free list)", second.ID())
	}
}

func TestCreateViewAppliesInitialURL(t *testing.T) {
	e := newTestEngine(t)

	handle, err := e.CreateView(view.CreateViewParams{
		InitialWidth:  100,
		InitialHeight: 100,
		InitialURL:    "https://example.test",
	}, time.Second)
	if err != nil {
		t.Fatalf("CreateView: %v", err)
	}
	defer handle.Close()

	if got := e.webEngine.(*fakeWebEngine).lastWebView().snapshot().lastURL; got != "https://example.test" {
		t.Errorf("webview lastURL = %q, want %q", got, "https://example.test")
	}
}

func TestSetActiveAndMouseMoveReachWebview(t *testing.T) {
	e := newTestEngine(t)

	handle, err := e.CreateView(view.CreateViewParams{InitialWidth: 64, InitialHeight: 64}, time.Second)
	if err != nil {
		t.Fatalf("CreateView: %v", err)
	}
	defer handle.Close()

	handle.SetActive(true)
	handle.QueueMouseMove(12, 34)
	handle.Wake()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if handle.IsActive() {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !handle.IsActive() {
		t.Fatal("view never became active")
	}

	events := waitForEvents(e.webEngine.(*fakeWebEngine).lastWebView(), 1)
	if len(events) != 1 || events[0].Kind != coalesce.InputKindMouseMove || events[0].X != 12 || events[0].Y != 34 {
		t.Errorf("webview events = %+v, want one mouse move at (12,34)", events)
	}
}

func TestPushInputEventsTranslatesKeyEvent(t *testing.T) {
	e := newTestEngine(t)

	handle, err := e.CreateView(view.CreateViewParams{InitialWidth: 64, InitialHeight: 64}, time.Second)
	if err != nil {
		t.Fatalf("CreateView: %v", err)
	}
	defer handle.Close()

	handle.SetActive(true)
	accepted := handle.PushInputEvents([]coalesce.InputEvent{{
		Kind:     coalesce.InputKindKey,
		KeyState: 0,
		GLFWKey:  65, // 'A'
	}})
	if accepted != 1 {
		t.Fatalf("accepted = %d, want 1", accepted)
	}
	handle.NotifyInputPending()
	handle.Wake()

	events := waitForEvents(e.webEngine.(*fakeWebEngine).lastWebView(), 1)
	want := TranslatedInputEvent{
		Kind:    coalesce.InputKindKey,
		KeyDown: true,
		Code:    CodeKeyA,
		Key:     Key{IsCharacter: true, Character: 'a'},
	}
	if len(events) != 1 || events[0] != want {
		t.Errorf("webview events = %+v, want one %+v", events, want)
	}
}

func TestEngineTickDrainsVsyncQueue(t *testing.T) {
	e := newTestEngine(t)

	handle, err := e.CreateView(view.CreateViewParams{InitialWidth: 32, InitialHeight: 32, TargetFPS: 0}, time.Second)
	if err != nil {
		t.Fatalf("CreateView: %v", err)
	}
	defer handle.Close()

	var ran atomic.Bool
	e.vsyncQueue.Enqueue(func() { ran.Store(true) })
	e.Tick()
	if !ran.Load() {
		t.Fatal("vsync callback did not run after Tick")
	}
}
