package glfn

// A minimal set of GL constants rendercontext needs; values match the
// OpenGL / OpenGL ES wire constants exactly, so a real API implementation
// can pass them straight through to the driver.
const (
	Framebuffer       uint32 = 0x8D40
	Renderbuffer      uint32 = 0x8D41
	Texture2D         uint32 = 0x0DE1
	ColorAttachment0  uint32 = 0x8CE0
	DepthStencilAttach uint32 = 0x821A

	RGBA          uint32 = 0x1908
	RGBA8         int32  = 0x8058
	SRGB8Alpha8   int32  = 0x8C43
	Depth24Stencil8 uint32 = 0x88F0
	UnsignedByte  uint32 = 0x1401

	TextureMinFilter uint32 = 0x2801
	TextureMagFilter uint32 = 0x2800
	Linear           int32  = 0x2601

	FramebufferComplete uint32 = 0x8CD5
	FramebufferSRGB     uint32 = 0x8DB9

	SyncGPUCommandsComplete uint32 = 0x9117
	SyncFlushCommandsBit    uint32 = 0x00000001
	AlreadySignaled         uint32 = 0x911A
	ConditionSatisfied      uint32 = 0x911C
	TimeoutExpired          uint32 = 0x911B
	WaitFailed              uint32 = 0x911D

	Version uint32 = 0x1F02
)
