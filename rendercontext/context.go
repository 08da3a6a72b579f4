// Package rendercontext implements the triple-buffered offscreen GL
// rendering context described in §4.3: one FBO+texture per slot over a
// shared depth-stencil renderbuffer, driven through the glfn function
// table and coordinated with the consumer via frame.SharedState.
package rendercontext

import (
	"errors"

	"github.com/gazed/servoview/frame"
	"github.com/gazed/servoview/glfn"
	"github.com/gazed/servoview/refresh"
)

// ErrNothingToRotate is returned by Present when the reclaim algorithm
// could not find a slot to rotate into; the caller simply retries on the
// next frame, per §4.2's failure semantics.
var ErrNothingToRotate = errors.New("rendercontext: no slot available to reclaim")

type slotResources struct {
	fbo     uint32
	texture uint32
}

// Context is the triple-buffered offscreen rendering context for one
// view. All methods run on the engine thread; it is not safe to call
// concurrently with itself.
type Context struct {
	gl glfn.API

	shared *frame.SharedState

	width, height uint32

	depthStencilRB uint32
	slots          [frame.TripleBufferCount]slotResources

	unsafeNoConsumerFence bool
	unsafeNoProducerFence bool

	useSRGB      bool
	srgbEnabled  bool
	internalFmt  int32

	refreshDriver refresh.Driver

	destroyed bool
}

// New allocates the shared depth-stencil renderbuffer and all three
// slots' FBO+texture at initialWidth×initialHeight, seeding slot 0 as the
// back slot via shared (which must already have been created with
// frame.NewSharedState at the same size).
func New(gl glfn.API, shared *frame.SharedState, initialWidth, initialHeight uint32, supportsSRGB, unsafeNoConsumerFence, unsafeNoProducerFence bool) *Context {
	c := &Context{
		gl:                    gl,
		shared:                shared,
		width:                 initialWidth,
		height:                initialHeight,
		unsafeNoConsumerFence: unsafeNoConsumerFence,
		unsafeNoProducerFence: unsafeNoProducerFence,
		useSRGB:               supportsSRGB,
	}
	if supportsSRGB {
		c.internalFmt = glfn.SRGB8Alpha8
	} else {
		c.internalFmt = glfn.RGBA8
	}

	var rb [1]uint32
	gl.GenRenderbuffers(1, rb[:])
	c.depthStencilRB = rb[0]
	c.bindDepthStencil(initialWidth, initialHeight)

	for i := range c.slots {
		c.allocSlot(i, initialWidth, initialHeight)
	}
	return c
}

func (c *Context) bindDepthStencil(w, h uint32) {
	c.gl.BindRenderbuffer(glfn.Renderbuffer, c.depthStencilRB)
	c.gl.RenderbufferStorage(glfn.Renderbuffer, glfn.Depth24Stencil8, int32(w), int32(h))
}

func (c *Context) allocSlot(i int, w, h uint32) {
	var fboOut, texOut [1]uint32
	c.gl.GenFramebuffers(1, fboOut[:])
	c.gl.GenTextures(1, texOut[:])
	c.slots[i] = slotResources{fbo: fboOut[0], texture: texOut[0]}

	c.gl.BindTexture(glfn.Texture2D, texOut[0])
	c.gl.TexParameteri(glfn.Texture2D, glfn.TextureMinFilter, glfn.Linear)
	c.gl.TexParameteri(glfn.Texture2D, glfn.TextureMagFilter, glfn.Linear)
	c.gl.TexImage2D(glfn.Texture2D, 0, c.internalFmt, int32(w), int32(h), 0, glfn.RGBA, glfn.UnsignedByte, nil)

	c.gl.BindFramebuffer(glfn.Framebuffer, fboOut[0])
	c.gl.FramebufferTexture2D(glfn.Framebuffer, glfn.ColorAttachment0, glfn.Texture2D, texOut[0], 0)
	c.gl.FramebufferRenderbuffer(glfn.Framebuffer, glfn.DepthStencilAttach, glfn.Renderbuffer, c.depthStencilRB)

	c.shared.Slot(i).SetTextureID(texOut[0])
	c.shared.Slot(i).SetSize(w, h)
}

// IsActive delegates to the shared frame state's active flag.
func (c *Context) IsActive() bool { return c.shared.IsActive() }

// Size returns the context's current logical size.
func (c *Context) Size() (uint32, uint32) { return c.width, c.height }
