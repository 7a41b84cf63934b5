// Package host drives a renderable application: it owns the window, the GL
// context and the event loop, and calls into the application's lifecycle
// hooks in a fixed single-threaded order.
package host

import (
	"fmt"
	"time"

	"github.com/skydome/planewarp/glfwcontext"
	"github.com/skydome/planewarp/graphics"
	"github.com/skydome/planewarp/log"
)

var logger = log.New("host")

// Config is the window/context configuration an App requests during
// Initialize. The host consumes it before Load runs.
type Config struct {
	Title        string
	WindowWidth  int
	WindowHeight int
	GLMajor      int
	GLMinor      int
}

// App is the lifecycle contract the host drives:
// Initialize -> Load -> repeat{Update, Draw} -> Unload.
// The host stops calling Update/Draw once ReadyToExit reports true.
type App interface {
	Initialize(cfg *Config)
	Load()
	Update(in InputState)
	Draw()
	Unload()
	ReadyToExit() bool
}

// Options configure a host run.
type Options struct {
	API     graphics.API
	VSync   bool
	Visible bool

	// FrameHook, when set, runs after Draw and before the buffer swap.
	FrameHook func() error
}

// FrameSink consumes raw RGBA frames during a recorded run.
type FrameSink interface {
	WriteFrame(pixels []byte) error
}

func setup(app App, opt Options) (*glfwcontext.Context, error) {
	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	cfg := &Config{}
	app.Initialize(cfg)

	ctx, err := glfwcontext.New(glfwcontext.WindowSpec{
		Title:   cfg.Title,
		Width:   cfg.WindowWidth,
		Height:  cfg.WindowHeight,
		GLMajor: cfg.GLMajor,
		GLMinor: cfg.GLMinor,
		Visible: opt.Visible,
		VSync:   opt.VSync,
	})
	if err != nil {
		glfwcontext.TerminateGraphics()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	ctx.MakeCurrent()
	if err := opt.API.Init(); err != nil {
		ctx.Shutdown()
		glfwcontext.TerminateGraphics()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Noticef("window %q %dx%d (GL %d.%d)", cfg.Title, cfg.WindowWidth, cfg.WindowHeight, cfg.GLMajor, cfg.GLMinor)
	app.Load()
	return ctx, nil
}

// Run drives the interactive loop until the App reports ReadyToExit or the
// window manager closes the window. Must be called from the main thread.
func Run(app App, opt Options) error {
	ctx, err := setup(app, opt)
	if err != nil {
		return err
	}
	defer glfwcontext.TerminateGraphics()
	defer ctx.Shutdown()

	for !ctx.ShouldClose() && !app.ReadyToExit() {
		app.Update(glfwInput{ctx})
		if app.ReadyToExit() {
			break
		}
		app.Draw()
		if opt.FrameHook != nil {
			if err := opt.FrameHook(); err != nil {
				return err
			}
		}
		ctx.EndFrame()
	}

	app.Unload()
	return nil
}

// Record drives a fixed-length run, handing every frame's pixels to sink.
// Input is still polled, so Escape aborts a recording early.
func Record(app App, opt Options, duration float64, fps int, sink FrameSink) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}

	ctx, err := setup(app, opt)
	if err != nil {
		return err
	}
	defer glfwcontext.TerminateGraphics()
	defer ctx.Shutdown()

	width, height := ctx.FramebufferSize()
	pixels := make([]byte, width*height*4)
	totalFrames := int(duration * float64(fps))

	logger.Noticef("recording %d frames at %d fps", totalFrames, fps)
	start := time.Now()

	for frame := 0; frame < totalFrames; frame++ {
		if ctx.ShouldClose() || app.ReadyToExit() {
			logger.Notice("recording aborted")
			break
		}
		app.Update(glfwInput{ctx})
		app.Draw()
		opt.API.ReadPixels(int32(width), int32(height), pixels)
		if err := sink.WriteFrame(pixels); err != nil {
			app.Unload()
			return fmt.Errorf("failed to write frame %d: %w", frame, err)
		}
		ctx.EndFrame()
	}

	logger.Noticef("recorded in %v", time.Since(start).Round(time.Millisecond))
	app.Unload()
	return nil
}
