// Package glfwcontext owns the GLFW window and input polling. All methods
// must be called from the main thread.
package glfwcontext

import (
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/skydome/planewarp/log"
)

var logger = log.New("glfw")

// WindowSpec describes the window and context to create.
type WindowSpec struct {
	Title   string
	Width   int
	Height  int
	GLMajor int
	GLMinor int
	Visible bool
	VSync   bool
}

// Context wraps a GLFW window with the small surface the host loop needs.
type Context struct {
	window *glfw.Window
	vsync  bool
}

// New creates a window per spec. The projection surface is fixed-size, so
// the window is never resizable.
func New(spec WindowSpec) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, spec.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, spec.GLMinor)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	if spec.Visible {
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(spec.Width, spec.Height, spec.Title, nil, nil)
	if err != nil {
		return nil, err
	}

	return &Context{window: win, vsync: spec.VSync}, nil
}

// MakeCurrent makes the GL context current on the calling thread and applies
// the swap interval, which GLFW ties to the current context.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
	if c.vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

// KeyDown reports whether key is currently pressed.
func (c *Context) KeyDown(key glfw.Key) bool {
	return c.window.GetKey(key) == glfw.Press
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

// EndFrame presents the frame and pumps the event queue.
func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) FramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	logger.Debug("GLFW initialized")
	return nil
}

// TerminateGraphics shuts GLFW down. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	logger.Debug("GLFW terminated")
}
