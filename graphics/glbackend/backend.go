// Package glbackend implements graphics.API on the desktop GL bindings.
//
// The warper requests a 2.0 context, so the backend uses the v2.1 binding
// package. Debug output comes from the KHR_debug/ARB_debug_output extension
// entry points, which the bindings carry alongside the core functions; it is
// only enabled when the driver advertises the extension.
package glbackend

import (
	"strings"
	"sync"
	"unsafe"

	gl "github.com/go-gl/gl/v2.1/gl"

	"github.com/skydome/planewarp/graphics"
)

// go-gl function pointers are process-global, so guard Init like any other
// once-per-process GL setup.
var glInitOnce sync.Once

type Backend struct {
	extensions map[string]bool
	debugCB    graphics.DebugProc
}

var _ graphics.API = (*Backend)(nil)

func New() *Backend {
	return &Backend{}
}

func (b *Backend) Init() error {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	return initErr
}

func (b *Backend) hasExtension(name string) bool {
	if b.extensions == nil {
		b.extensions = make(map[string]bool)
		all := gl.GoStr(gl.GetString(gl.EXTENSIONS))
		for _, ext := range strings.Fields(all) {
			b.extensions[ext] = true
		}
	}
	return b.extensions[name]
}

func (b *Backend) EnableDebugOutput(cb graphics.DebugProc) bool {
	if !b.hasExtension("GL_KHR_debug") && !b.hasExtension("GL_ARB_debug_output") {
		return false
	}

	// Keep the callback reachable for the lifetime of the context.
	b.debugCB = cb

	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageControl(gl.DONT_CARE, gl.DONT_CARE, gl.DONT_CARE, 0, nil, true)
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		b.debugCB(graphics.DebugMessage{
			Source:   source,
			Type:     gltype,
			ID:       id,
			Severity: severity,
			Text:     message,
		})
	}, nil)
	return true
}

func stageType(stage graphics.Stage) uint32 {
	if stage == graphics.VertexStage {
		return gl.VERTEX_SHADER
	}
	return gl.FRAGMENT_SHADER
}

func (b *Backend) CompileStage(stage graphics.Stage, source string) (uint32, string, bool) {
	handle := gl.CreateShader(stageType(stage))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(logText))
		return handle, strings.TrimRight(logText, "\x00"), false
	}
	return handle, "", true
}

func (b *Backend) NewProgram() uint32 {
	return gl.CreateProgram()
}

func (b *Backend) AttachStage(program, stage uint32) {
	gl.AttachShader(program, stage)
}

func (b *Backend) DeleteStage(stage uint32) {
	gl.DeleteShader(stage)
}

func (b *Backend) BindAttribLocation(program, index uint32, name string) {
	gl.BindAttribLocation(program, index, gl.Str(name+"\x00"))
}

func (b *Backend) LinkProgram(program uint32) (string, bool) {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		return strings.TrimRight(logText, "\x00"), false
	}
	return "", true
}

func (b *Backend) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (b *Backend) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (b *Backend) NewStaticBuffer(data []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vbo
}

func (b *Backend) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (b *Backend) EnableVertexAttrib(index uint32, size int32, buffer uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.VertexAttribPointer(index, size, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(index)
}

func (b *Backend) DisableVertexAttrib(index uint32) {
	gl.DisableVertexAttribArray(index)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *Backend) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (b *Backend) ClearColor(r, g, bl, a float32) {
	gl.ClearColor(r, g, bl, a)
}

func (b *Backend) ColorMask(r, g, bl, a bool) {
	gl.ColorMask(r, g, bl, a)
}

func (b *Backend) ClearColorBuffer() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (b *Backend) DrawTriangleStrip(first, count int32) {
	gl.DrawArrays(gl.TRIANGLE_STRIP, first, count)
}

func (b *Backend) ReadPixels(width, height int32, dst []byte) {
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst))
}
