package host

import (
	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/skydome/planewarp/glfwcontext"
)

// Key names a key the application may query.
type Key int

const (
	KeyEscape Key = iota
)

// InputState is a snapshot view of current input. Implementations answer
// "is this named key currently pressed"; the App only reads it.
type InputState interface {
	IsKeyPressed(key Key) bool
}

// glfwInput adapts a window context to InputState.
type glfwInput struct {
	ctx *glfwcontext.Context
}

func (in glfwInput) IsKeyPressed(key Key) bool {
	switch key {
	case KeyEscape:
		return in.ctx.KeyDown(glfw.KeyEscape)
	}
	return false
}
