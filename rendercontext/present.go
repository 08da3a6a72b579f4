package rendercontext

import "github.com/gazed/servoview/glfn"

// PrepareForRendering sets the sRGB framebuffer enable state (only
// toggling the driver call when it actually changed, per §4.3's cached
// flag), ensures the back slot's texture matches the current desired
// size, and binds its FBO so the embedded web engine can draw into it.
func (c *Context) PrepareForRendering() {
	c.setSRGBEnabled(c.useSRGB)

	back := c.shared.BackSlot()
	c.reallocIfNeeded(back)
	c.gl.BindFramebuffer(glfn.Framebuffer, c.slots[back].fbo)
}

func (c *Context) setSRGBEnabled(enable bool) {
	if c.srgbEnabled == enable {
		return
	}
	if enable {
		c.gl.Enable(glfn.FramebufferSRGB)
	} else {
		c.gl.Disable(glfn.FramebufferSRGB)
	}
	c.srgbEnabled = enable
}

func (c *Context) reallocSlot(i int, w, h uint32) {
	res := c.slots[i]
	c.gl.BindTexture(glfn.Texture2D, res.texture)
	c.gl.TexImage2D(glfn.Texture2D, 0, c.internalFmt, int32(w), int32(h), 0, glfn.RGBA, glfn.UnsignedByte, nil)
	c.shared.Slot(i).SetSize(w, h)
}

func (c *Context) reallocIfNeeded(slot int) {
	if w, h := c.shared.Slot(slot).Size(); w != c.width || h != c.height {
		c.reallocSlot(slot, c.width, c.height)
	}
}

// PreflightReserveNextBackSlot reserves the next back slot ahead of
// paint, so Present cannot fail for lack of a slot merely because the
// consumer happened to be holding a texture at the wrong moment. It is
// idempotent: a call while a reservation is already pending is a no-op
// that reports success.
func (c *Context) PreflightReserveNextBackSlot() bool {
	if c.shared.ReservedNext() >= 0 {
		return true
	}
	next, ok := c.shared.ReserveNextBackSlot(c.shared.BackSlot(), c.unsafeNoConsumerFence, c.fenceSignaled)
	if !ok {
		return false
	}
	c.reallocIfNeeded(next)
	c.shared.SetReservedNext(next)
	return true
}

// Present implements the §4.3 present protocol: reserve (or reuse a
// preflight reservation for) the next back slot, insert a producer fence
// unless disabled, allocate the next frame sequence, publish the current
// back slot, and rotate the back slot forward. It returns
// ErrNothingToRotate if no slot could be reclaimed, in which case the
// current back slot is simply re-published next time without rotating —
// a liveness concern, not a correctness one.
func (c *Context) Present() error {
	currentBack := c.shared.BackSlot()

	next := c.shared.ReservedNext()
	if next < 0 {
		reserved, ok := c.shared.ReserveNextBackSlot(currentBack, c.unsafeNoConsumerFence, c.fenceSignaled)
		if !ok {
			return ErrNothingToRotate
		}
		c.reallocIfNeeded(reserved)
		next = reserved
	}

	var fence uint64
	if !c.unsafeNoProducerFence {
		sync := c.gl.FenceSync(glfn.SyncGPUCommandsComplete, 0)
		c.gl.Flush()
		fence = uint64(sync)
	}

	seq := c.shared.NextFrameSeq()
	c.shared.Publish(currentBack, fence, seq)
	c.shared.AdvanceBackSlot(next)
	return nil
}

// fenceSignaled polls a consumer fence with a zero timeout. A signalled
// fence's sync object is deleted here, since the reclaim pass that asked
// moves the slot to FREE and drops the handle right after.
func (c *Context) fenceSignaled(fenceHandle uint64) bool {
	if fenceHandle == 0 {
		return true
	}
	status := c.gl.ClientWaitSync(glfn.Sync(fenceHandle), glfn.SyncFlushCommandsBit, 0)
	if status == glfn.AlreadySignaled || status == glfn.ConditionSatisfied {
		c.gl.DeleteSync(glfn.Sync(fenceHandle))
		return true
	}
	return false
}
