package rendercontext

import "github.com/gazed/servoview/refresh"

// RefreshDriver returns the refresh driver selected for this view at
// creation (fixed-interval or external-vsync, per §4.6), or nil if none
// has been set yet. The embedded web engine calls ObserveNextFrame on it
// during PrepareForRendering/paint to be notified when it should draw
// the next frame.
func (c *Context) RefreshDriver() refresh.Driver {
	return c.refreshDriver
}

// SetRefreshDriver attaches the view's refresh driver. Called once by
// the engine thread right after New, before the rendering context is
// handed to the embedded web engine.
func (c *Context) SetRefreshDriver(driver refresh.Driver) {
	c.refreshDriver = driver
}
