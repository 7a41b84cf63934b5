// Package gltest provides a recording in-memory graphics.API for tests that
// exercise GPU submission paths without a GL context.
package gltest

import (
	"fmt"

	"github.com/skydome/planewarp/graphics"
)

// Backend records every call made against it. The zero value is ready to use.
type Backend struct {
	// Forced failures.
	FailCompile map[graphics.Stage]bool
	FailLink    bool
	NoDebug     bool

	// Recorded state.
	Clears     int
	Draws      []DrawCall
	UseCalls   []uint32
	Viewports  [][4]int32
	ColorMasks [][4]bool
	DebugCB    graphics.DebugProc

	Programs     []uint32
	Attaches     [][2]uint32
	Linked       map[uint32]bool
	AttribBinds  []AttribBind
	Buffers      map[uint32][]float32
	DeletedBufs  []uint32
	DeletedProgs []uint32

	EnabledAttribs  []uint32
	DisabledAttribs []uint32
	ReadPixelCalls  int

	nextHandle uint32
}

var _ graphics.API = (*Backend)(nil)

type DrawCall struct {
	First, Count int32
}

type AttribBind struct {
	Program, Index uint32
	Name           string
	AfterLink      bool
}

func (b *Backend) handle() uint32 {
	b.nextHandle++
	return b.nextHandle
}

func (b *Backend) Init() error { return nil }

func (b *Backend) EnableDebugOutput(cb graphics.DebugProc) bool {
	if b.NoDebug {
		return false
	}
	b.DebugCB = cb
	return true
}

// Emit drives the registered debug callback the way a driver would.
func (b *Backend) Emit(severity uint32, text string) {
	if b.DebugCB != nil {
		b.DebugCB(graphics.DebugMessage{Severity: severity, Text: text})
	}
}

func (b *Backend) CompileStage(stage graphics.Stage, source string) (uint32, string, bool) {
	h := b.handle()
	if b.FailCompile[stage] {
		return h, fmt.Sprintf("0:1(1): error: forced %s failure", stage), false
	}
	return h, "", true
}

func (b *Backend) NewProgram() uint32 {
	h := b.handle()
	b.Programs = append(b.Programs, h)
	return h
}

func (b *Backend) AttachStage(program, stage uint32) {
	b.Attaches = append(b.Attaches, [2]uint32{program, stage})
}

func (b *Backend) DeleteStage(stage uint32) {}

func (b *Backend) BindAttribLocation(program, index uint32, name string) {
	b.AttribBinds = append(b.AttribBinds, AttribBind{
		Program:   program,
		Index:     index,
		Name:      name,
		AfterLink: b.Linked[program],
	})
}

func (b *Backend) LinkProgram(program uint32) (string, bool) {
	if b.FailLink {
		return "error: forced link failure", false
	}
	if b.Linked == nil {
		b.Linked = make(map[uint32]bool)
	}
	b.Linked[program] = true
	return "", true
}

func (b *Backend) UseProgram(program uint32) {
	b.UseCalls = append(b.UseCalls, program)
}

func (b *Backend) DeleteProgram(program uint32) {
	b.DeletedProgs = append(b.DeletedProgs, program)
}

func (b *Backend) NewStaticBuffer(data []float32) uint32 {
	if b.Buffers == nil {
		b.Buffers = make(map[uint32][]float32)
	}
	h := b.handle()
	b.Buffers[h] = append([]float32(nil), data...)
	return h
}

func (b *Backend) DeleteBuffer(buffer uint32) {
	b.DeletedBufs = append(b.DeletedBufs, buffer)
}

func (b *Backend) EnableVertexAttrib(index uint32, size int32, buffer uint32) {
	b.EnabledAttribs = append(b.EnabledAttribs, index)
}

func (b *Backend) DisableVertexAttrib(index uint32) {
	b.DisabledAttribs = append(b.DisabledAttribs, index)
}

func (b *Backend) Viewport(x, y, width, height int32) {
	b.Viewports = append(b.Viewports, [4]int32{x, y, width, height})
}

func (b *Backend) ClearColor(r, g, bl, a float32) {}

func (b *Backend) ColorMask(r, g, bl, a bool) {
	b.ColorMasks = append(b.ColorMasks, [4]bool{r, g, bl, a})
}

func (b *Backend) ClearColorBuffer() {
	b.Clears++
}

func (b *Backend) DrawTriangleStrip(first, count int32) {
	b.Draws = append(b.Draws, DrawCall{First: first, Count: count})
}

func (b *Backend) ReadPixels(width, height int32, dst []byte) {
	b.ReadPixelCalls++
}
