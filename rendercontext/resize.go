package rendercontext

import "github.com/gazed/servoview/glfn"

// Resize updates the context's logical size and, if it actually changed,
// reallocates the shared depth-stencil renderbuffer and rotates every
// reachable slot through frame.SharedState.Resize. A no-op if the new
// size matches the current one.
func (c *Context) Resize(newWidth, newHeight uint32) {
	if newWidth == c.width && newHeight == c.height {
		return
	}
	c.width, c.height = newWidth, newHeight
	c.bindDepthStencil(newWidth, newHeight)

	c.shared.Resize(newWidth, newHeight, func(slot int, w, h uint32) {
		c.reallocSlot(slot, w, h)
	})
}

// ReadToImage reads back the current back slot's framebuffer as RGBA8,
// flipping rows so the result is top-down.
func (c *Context) ReadToImage() []byte {
	back := c.shared.BackSlot()
	c.gl.BindFramebuffer(glfn.Framebuffer, c.slots[back].fbo)

	w, h := int(c.width), int(c.height)
	stride := w * 4
	buf := make([]byte, stride*h)
	c.gl.ReadPixels(0, 0, int32(w), int32(h), glfn.RGBA, glfn.UnsignedByte, buf)

	flipped := make([]byte, len(buf))
	for row := 0; row < h; row++ {
		srcOff := row * stride
		dstOff := (h - 1 - row) * stride
		copy(flipped[dstOff:dstOff+stride], buf[srcOff:srcOff+stride])
	}
	return flipped
}
