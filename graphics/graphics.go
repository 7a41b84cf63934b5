package graphics

// Stage identifies a shader stage kind.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

// DebugMessage is a single driver-reported diagnostic.
type DebugMessage struct {
	Source   uint32
	Type     uint32
	ID       uint32
	Severity uint32
	Text     string
}

// DebugProc receives driver debug messages. It is invoked synchronously on
// the GL thread while debug output is enabled.
type DebugProc func(DebugMessage)

// API is the slice of the GL surface the warper touches. The real
// implementation lives in glbackend; tests use a recording fake.
type API interface {
	// Init loads the GL function pointers. The context must be current.
	Init() error

	// EnableDebugOutput turns on synchronous debug output with all messages
	// unfiltered and routes them to cb. Returns false when the driver does
	// not expose a debug output extension.
	EnableDebugOutput(cb DebugProc) bool

	// CompileStage compiles source as the given stage. On failure ok is
	// false and infoLog holds the compiler output.
	CompileStage(stage Stage, source string) (handle uint32, infoLog string, ok bool)
	NewProgram() uint32
	AttachStage(program, stage uint32)
	DeleteStage(stage uint32)

	// BindAttribLocation takes effect on the next link of program.
	BindAttribLocation(program, index uint32, name string)

	// LinkProgram links program. On failure ok is false and infoLog holds
	// the linker output.
	LinkProgram(program uint32) (infoLog string, ok bool)
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// NewStaticBuffer uploads data once into a GPU-resident array buffer.
	NewStaticBuffer(data []float32) uint32
	DeleteBuffer(buffer uint32)

	// EnableVertexAttrib sources attribute index from buffer as tightly
	// packed float vectors of the given component size.
	EnableVertexAttrib(index uint32, size int32, buffer uint32)
	DisableVertexAttrib(index uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	ColorMask(r, g, b, a bool)
	ClearColorBuffer()
	DrawTriangleStrip(first, count int32)

	// ReadPixels reads the current color buffer as tightly packed RGBA
	// bytes, bottom row first. dst must hold width*height*4 bytes.
	ReadPixels(width, height int32, dst []byte)
}
