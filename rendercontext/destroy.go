package rendercontext

import "github.com/gazed/servoview/glfn"

// Destroy releases every GL resource this context owns. It is idempotent:
// calling it twice has no effect the second time. Any outstanding
// RELEASE_PENDING slots are reclaimed first (unless unsafe mode never
// produces consumer fences) so their sync objects are properly deleted
// rather than leaked.
func (c *Context) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true

	if !c.unsafeNoConsumerFence {
		for {
			if _, ok := c.shared.ReserveNextBackSlot(c.shared.BackSlot(), false, c.fenceSignaled); !ok {
				break
			}
		}
	}

	for i := range c.slots {
		fence := c.shared.Slot(i).ProducerFence()
		if fence != 0 {
			c.gl.DeleteSync(glfn.Sync(fence))
			c.shared.Slot(i).ClearProducerFence()
		}
	}

	fbos := make([]uint32, len(c.slots))
	texs := make([]uint32, len(c.slots))
	for i, s := range c.slots {
		fbos[i] = s.fbo
		texs[i] = s.texture
	}
	c.gl.DeleteFramebuffers(int32(len(fbos)), fbos)
	c.gl.DeleteTextures(int32(len(texs)), texs)
	c.gl.DeleteRenderbuffers(1, []uint32{c.depthStencilRB})
}
