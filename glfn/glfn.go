// Package glfn declares the small set of OpenGL entry points the triple
// buffer rendering context needs, as a typed function-pointer table
// instead of a generated cgo binding. The host process resolves and
// installs these once (the platform GL loader itself is out of this
// module's scope); rendercontext only ever calls through the interface,
// which also keeps it unit-testable against a fake.
package glfn

// Sync is an opaque GL sync object handle (GLsync), carried as the
// producer/consumer fence value stored in frame.Slot.
type Sync uintptr

// API is the subset of the OpenGL API the triple-buffer rendering context
// exercises: framebuffer/texture/renderbuffer lifecycle, the read-back
// path, and GPU fence insertion/waiting. Grounded on the signatures of
// gazed-vu's generated render/gl bindings, trimmed to only what §4.3
// needs — this module does not reproduce that file's full ~200-function
// surface.
type API interface {
	GenFramebuffers(n int32, out []uint32)
	DeleteFramebuffers(n int32, ids []uint32)
	BindFramebuffer(target uint32, fbo uint32)
	FramebufferTexture2D(target, attachment, texTarget uint32, texture uint32, level int32)
	FramebufferRenderbuffer(target, attachment, rbTarget uint32, renderbuffer uint32)
	CheckFramebufferStatus(target uint32) uint32

	GenTextures(n int32, out []uint32)
	DeleteTextures(n int32, ids []uint32)
	BindTexture(target uint32, texture uint32)
	TexImage2D(target uint32, level int32, internalFormat int32, width, height int32, border int32, format, xtype uint32, pixels []byte)
	TexParameteri(target uint32, pname uint32, param int32)

	GenRenderbuffers(n int32, out []uint32)
	DeleteRenderbuffers(n int32, ids []uint32)
	BindRenderbuffer(target uint32, renderbuffer uint32)
	RenderbufferStorage(target uint32, internalFormat uint32, width, height int32)

	FenceSync(condition uint32, flags uint32) Sync
	DeleteSync(sync Sync)
	ClientWaitSync(sync Sync, flags uint32, timeoutNanos uint64) uint32
	Flush()

	Enable(cap uint32)
	Disable(cap uint32)
	Viewport(x, y, width, height int32)
	GetIntegerv(pname uint32, out []int32)
	GetString(name uint32) string
	ReadPixels(x, y, width, height int32, format, xtype uint32, out []byte)
}
