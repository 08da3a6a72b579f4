// Package engine implements the single-writer engine-thread orchestrator
// of §4.5: one goroutine per Engine that owns the GL rendering context,
// drains commands and coalesced per-view work, drives the embedded web
// engine's cooperative event loop, and parks between ticks. It is
// grounded on original_source's servo_thread.rs main loop and
// gazed-vu/vu.go's machine goroutine.
package engine

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/gazed/servoview/coalesce"
	"github.com/gazed/servoview/frame"
	"github.com/gazed/servoview/glfn"
	"github.com/gazed/servoview/glfwapi"
	"github.com/gazed/servoview/lfq"
	"github.com/gazed/servoview/rendercontext"
	"github.com/gazed/servoview/refresh"
	"github.com/gazed/servoview/view"
)

// pendingIDRingCapacity matches the 16*1024 capacity original_source
// gives each of its three PendingIdQueues; this module uses one shared
// ring carrying every work category via coalesce.PendingWork's bitmask
// instead of three parallel rings.
const pendingIDRingCapacity = 16 * 1024

// GLContextFactory builds the shared offscreen GL function table the
// engine thread renders through, standing in for
// GlfwSharedContext::new's platform-specific context creation. The host
// supplies one because the actual GL loader is a platform concern out of
// this module's scope (see glfn's package doc).
type GLContextFactory func(table glfwapi.Table, sharedWindow glfwapi.Window, supportsSRGB bool) (glfn.API, error)

// Engine owns one dedicated goroutine driving one embedded web engine
// instance. Host code calls CreateView, Tick and Shutdown on it; all
// per-view interaction goes through the view.Handle values CreateView
// returns.
type Engine struct {
	commandQueue *view.CommandQueue
	parker       *lfq.Parker
	waker        *threadWaker
	pendingIDs   *coalesce.PendingIDQueue

	nextViewID uint32 // engine-thread-only

	gl        glfn.API
	webEngine WebEngine

	vsyncQueue    *refresh.VsyncCallbackQueue
	scheduler     *refresh.Scheduler
	schedulerOnce atomic.Bool

	cfg Config

	shutdownOnce atomic.Bool
	stopped      chan struct{}
}

// viewEntry is bookkeeping held only on the engine thread, grounded on
// servo_thread.rs's ViewEntry.
type viewEntry struct {
	id    uint32
	token uint64

	webview WebView
	ctx     *rendercontext.Context
	shared  *frame.SharedState

	mouseMove  *coalesce.MouseMove
	resize     *coalesce.Resize
	loadURL    *coalesce.LoadURL
	inputQueue *coalesce.InputEventQueue
	pending    *coalesce.PendingWork

	activeMirror bool
	widthMirror  uint32
	heightMirror uint32
}

// engineDelegate implements WebViewDelegate, driving paint/present the
// same way servo_thread.rs's Delegate does in notify_new_frame_ready.
type engineDelegate struct {
	ctx *rendercontext.Context
}

func (d *engineDelegate) NotifyNewFrameReady(wv WebView) {
	if !d.ctx.IsActive() {
		return
	}
	if !d.ctx.PreflightReserveNextBackSlot() {
		return
	}
	wv.Paint()
	if err := d.ctx.Present(); err != nil && !errors.Is(err, rendercontext.ErrNothingToRotate) {
		log.Printf("engine: present failed: %v", err)
	}
}

// New spawns the engine thread and blocks until it has either finished
// initializing or timeout elapses, matching §5's 30s one-shot deadline
// for engine-thread init.
func New(
	table glfwapi.Table,
	sharedWindow glfwapi.Window,
	newGLContext GLContextFactory,
	webEngineFactory WebEngineFactory,
	attrs ...Attr,
) (*Engine, error) {
	cfg := configDefaults
	for _, attr := range attrs {
		attr(&cfg)
	}
	if err := LoadConfigFile(&cfg, cfg.configDir); err != nil {
		return nil, fmt.Errorf("engine: loading config file: %w", err)
	}

	e := &Engine{
		commandQueue: view.NewCommandQueue(),
		parker:       lfq.NewParker(),
		pendingIDs:   coalesce.NewPendingIDQueue(pendingIDRingCapacity),
		vsyncQueue:   refresh.NewVsyncCallbackQueue(),
		cfg:          cfg,
		stopped:      make(chan struct{}),
	}
	e.waker = newThreadWaker(e.parker)
	e.nextViewID = 1

	init := lfq.NewOneShot[error](lfq.NewParker())
	go e.run(table, sharedWindow, newGLContext, webEngineFactory, init)

	initErr, ok := init.RecvTimeout(30 * time.Second)
	if !ok {
		e.commandQueue.Push(view.Command{Kind: view.ShutdownCmd})
		e.parker.Unpark()
		return nil, errors.New("engine: timed out initializing engine thread")
	}
	if initErr != nil {
		return nil, initErr
	}
	return e, nil
}

func (e *Engine) run(table glfwapi.Table, sharedWindow glfwapi.Window, newGLContext GLContextFactory, webEngineFactory WebEngineFactory, init *lfq.OneShot[error]) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(e.stopped)

	gl, err := newGLContext(table, sharedWindow, true)
	if err != nil {
		init.Send(fmt.Errorf("engine: creating shared GL context: %w", err))
		return
	}
	e.gl = gl

	webEngine, err := webEngineFactory(WebEngineOptions{
		ResourcesDir: e.cfg.resourcesDir,
		ConfigDir:    e.cfg.configDir,
		Waker:        e.waker,
	})
	if err != nil {
		init.Send(fmt.Errorf("engine: constructing web engine: %w", err))
		return
	}
	e.webEngine = webEngine

	init.Send(nil)

	views := make(map[uint32]*viewEntry, 64)
	freeList := make([]uint32, 0, 16)
	var nextToken uint64

	for {
		// Phase A: command drain.
		shuttingDown := false
		for {
			cmd, ok := e.commandQueue.Pop()
			if !ok {
				break
			}
			switch cmd.Kind {
			case view.CreateViewCmd:
				e.handleCreateView(cmd, views, &nextToken, &freeList)
			case view.DestroyViewCmd:
				e.handleDestroyView(cmd, views, &freeList)
			case view.ShutdownCmd:
				shuttingDown = true
			}
		}
		if shuttingDown {
			for id, entry := range views {
				entry.ctx.Destroy()
				delete(views, id)
			}
			e.webEngine.Shutdown()
			return
		}

		// Phase B: pending drain.
		for {
			id, ok := e.pendingIDs.Pop()
			if !ok {
				break
			}
			if entry, ok := views[id]; ok {
				e.processPending(entry)
			}
		}
		if e.pendingIDs.TakeOverflowed() {
			for _, entry := range views {
				e.processPending(entry)
			}
		}

		// Phase C: web-engine spin.
		e.webEngine.SpinEventLoop()

		// Phase D: park unless woken during the spin.
		if e.waker.takeWakePending() {
			continue
		}
		e.parker.Park()
	}
}

func (e *Engine) handleCreateView(cmd view.Command, views map[uint32]*viewEntry, nextToken *uint64, freeList *[]uint32) {
	params := cmd.CreateParams
	width, height := params.InitialWidth, params.InitialHeight
	if width == 0 {
		width = e.cfg.defaultWidth
	}
	if height == 0 {
		height = e.cfg.defaultHeight
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	var id uint32
	if n := len(*freeList); n > 0 {
		id = (*freeList)[n-1]
		*freeList = (*freeList)[:n-1]
	} else {
		id = e.nextViewID
		e.nextViewID++
	}
	*nextToken++
	token := *nextToken

	unsafeNoProducerFence := params.UnsafeNoProducerFence && !e.cfg.safeMode

	shared := frame.NewSharedState(width, height)
	ctx := rendercontext.New(e.gl, shared, width, height, true, params.UnsafeNoConsumerFence, unsafeNoProducerFence)

	mouseMove := &coalesce.MouseMove{}
	resizeCoalescer := &coalesce.Resize{}
	loadURL := &coalesce.LoadURL{}
	pending := &coalesce.PendingWork{}
	inputQueue := coalesce.NewInputEventQueue(params.SingleProducerInput, e.cfg.inputQueueCapacity)

	var driver refresh.Driver
	if params.TargetFPS > 0 {
		targetFPS := params.TargetFPS
		if e.cfg.maxFixedIntervalFPS > 0 && targetFPS > e.cfg.maxFixedIntervalFPS {
			targetFPS = e.cfg.maxFixedIntervalFPS
		}
		if e.schedulerOnce.CompareAndSwap(false, true) {
			e.scheduler = refresh.NewScheduler()
		}
		driver = refresh.NewFixedInterval(e.scheduler, targetFPS)
	} else {
		driver = refresh.NewExternalVsync(e.vsyncQueue)
	}
	ctx.SetRefreshDriver(driver)

	delegate := &engineDelegate{ctx: ctx}
	webview := e.webEngine.CreateWebView(ctx, delegate)
	webview.Show()

	entry := &viewEntry{
		id:           id,
		token:        token,
		webview:      webview,
		ctx:          ctx,
		shared:       shared,
		mouseMove:    mouseMove,
		resize:       resizeCoalescer,
		loadURL:      loadURL,
		inputQueue:   inputQueue,
		pending:      pending,
		activeMirror: false,
		widthMirror:  width,
		heightMirror: height,
	}
	views[id] = entry

	if params.InitialURL != "" {
		webview.Load(params.InitialURL)
	}

	handle := view.New(view.Init{
		ID:                    id,
		Token:                 token,
		Shared:                shared,
		MouseMove:             mouseMove,
		Resize:                resizeCoalescer,
		InputQueue:            inputQueue,
		LoadURLBox:            loadURL,
		Pending:               pending,
		PendingQueue:          e.pendingIDs,
		CommandQueue:          e.commandQueue,
		EngineParker:          e.parker,
		UnsafeNoConsumerFence: params.UnsafeNoConsumerFence,
	})

	if cmd.CreateResponse != nil {
		cmd.CreateResponse.Send(view.CreateViewResult{Handle: handle})
	}
}

func (e *Engine) handleDestroyView(cmd view.Command, views map[uint32]*viewEntry, freeList *[]uint32) {
	entry, ok := views[cmd.DestroyID]
	if !ok || entry.token != cmd.DestroyToken {
		return
	}
	entry.ctx.Destroy()
	delete(views, cmd.DestroyID)
	*freeList = append(*freeList, cmd.DestroyID)
}

// processPending implements §4.5 Phase B's entry.process_pending loop.
func (e *Engine) processPending(entry *viewEntry) {
	for {
		bits := entry.pending.Take()

		if bits&coalesce.PendingLoadURL != 0 {
			if url, ok := entry.loadURL.Take(); ok {
				entry.webview.Load(*url)
				entry.loadURL.Recycle(url)
			}
		}

		if bits&coalesce.PendingActive != 0 {
			active := entry.shared.IsActive()
			if active != entry.activeMirror {
				if active {
					entry.webview.SetThrottled(false)
					entry.webview.Show()
				} else {
					entry.webview.SetThrottled(true)
					entry.webview.Hide()
				}
				entry.activeMirror = active
			}
		}

		if bits&coalesce.PendingResize != 0 {
			if w, h, ok := entry.resize.Take(); ok {
				if w != entry.widthMirror || h != entry.heightMirror {
					entry.ctx.Resize(w, h)
					entry.webview.Resize(w, h)
					entry.widthMirror, entry.heightMirror = w, h
				}
			}
		}

		if bits&coalesce.PendingMouseMove != 0 {
			if x, y, ok := entry.mouseMove.Take(); ok && entry.shared.IsActive() {
				entry.webview.NotifyInputEvent(TranslatedInputEvent{
					Kind: coalesce.InputKindMouseMove,
					X:    x,
					Y:    y,
				})
			}
		}

		if bits&coalesce.PendingInput != 0 {
			e.drainInput(entry)
		}

		if entry.pending.IsBusyOnly() && entry.pending.ClearBusyIfIdle() {
			break
		}
	}
}

// drainInput implements Phase B step f's drain/clear/peek race handling:
// after draining everything currently queued, clear the pending flag and
// peek once more — if a producer raced a push in between, re-mark pending
// and drain again rather than leaving an event stranded.
func (e *Engine) drainInput(entry *viewEntry) {
	for {
		active := entry.shared.IsActive()
		for {
			ev, ok := entry.inputQueue.Pop()
			if !ok {
				break
			}
			if active {
				entry.webview.NotifyInputEvent(translateInputEvent(ev))
			}
		}

		entry.inputQueue.ClearPending()
		ev, ok := entry.inputQueue.Pop()
		if !ok {
			break
		}
		entry.inputQueue.MarkPending()
		if entry.shared.IsActive() {
			entry.webview.NotifyInputEvent(translateInputEvent(ev))
		}
	}
}

// Tick drains the shared external-vsync callback queue, standing in for
// engine_tick in §6. The host calls this from its own vsync thread.
func (e *Engine) Tick() {
	e.vsyncQueue.Tick()
}

// Shutdown posts Shutdown to the command queue, wakes the engine thread,
// and blocks until it has exited. Idempotent.
func (e *Engine) Shutdown() {
	if !e.shutdownOnce.CompareAndSwap(false, true) {
		<-e.stopped
		return
	}
	e.commandQueue.Push(view.Command{Kind: view.ShutdownCmd})
	e.parker.Unpark()
	<-e.stopped
	if e.scheduler != nil {
		e.scheduler.Shutdown()
	}
}

// CreateView posts a CreateView command and blocks (up to timeout) for
// the engine thread to build the view and hand back a Handle.
func (e *Engine) CreateView(params view.CreateViewParams, timeout time.Duration) (*view.Handle, error) {
	response := lfq.NewOneShot[view.CreateViewResult](lfq.NewParker())
	e.commandQueue.Push(view.Command{
		Kind:           view.CreateViewCmd,
		CreateParams:   params,
		CreateResponse: response,
	})
	e.parker.Unpark()

	result, ok := response.RecvTimeout(timeout)
	if !ok {
		return nil, errors.New("engine: timed out creating view")
	}
	if result.Err != nil {
		return nil, result.Err
	}
	return result.Handle, nil
}
