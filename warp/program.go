// Package warp is the planetarium warper application core: a fullscreen
// quad pushed through a vertex/fragment warp program every frame.
package warp

import (
	"path/filepath"

	"github.com/skydome/planewarp/graphics"
	"github.com/skydome/planewarp/host"
	"github.com/skydome/planewarp/log"
	"github.com/skydome/planewarp/shader"
)

// Window and context constants. The projection surface is fixed.
const (
	Title        = "Planetarium Warper"
	WindowWidth  = 512
	WindowHeight = 512

	GLMajorVersion = 2
	GLMinorVersion = 0
)

const (
	positionSlot   = 0
	positionAttrib = "vPosition"
)

// Fullscreen clip-space quad, drawn as a 4-vertex triangle strip.
var quadVertices = []float32{
	-1.0, 1.0, // top left
	-1.0, -1.0, // bottom left
	1.0, 1.0, // top right
	1.0, -1.0, // bottom right
}

var logger = log.New("warp")

// Program owns the per-frame lifecycle. It is single-threaded and driven by
// the host in a fixed order: Initialize, Load, repeat{Update, Draw}, Unload.
type Program struct {
	api       graphics.API
	shaderDir string
	shader    *shader.Shader
	quad      uint32
	exit      bool
	reload    <-chan string
}

// New creates a Program rendering through api. shaderDir may be empty, in
// which case the embedded shader sources are used.
func New(api graphics.API, shaderDir string) *Program {
	return &Program{
		api:       api,
		shaderDir: shaderDir,
	}
}

// WatchShaders attaches a reload notification channel. Each received value
// triggers a shader rebuild on the next Update, on the render thread.
func (p *Program) WatchShaders(changes <-chan string) {
	p.reload = changes
}

// Initialize writes the fixed window configuration into cfg, regardless of
// its prior contents.
func (p *Program) Initialize(cfg *host.Config) {
	cfg.Title = Title
	cfg.WindowWidth = WindowWidth
	cfg.WindowHeight = WindowHeight
	cfg.GLMajor = GLMajorVersion
	cfg.GLMinor = GLMinorVersion
}

// Load performs one-time GPU setup: debug output, the warp program and the
// static quad buffer. Shader failures are logged, not returned; the draw
// path stays valid either way and the driver diagnostics say what broke.
func (p *Program) Load() {
	if !p.api.EnableDebugOutput(p.onDebugMessage) {
		logger.Notice("driver debug output not available")
	}

	p.shader = p.buildShader()
	p.quad = p.api.NewStaticBuffer(quadVertices)
}

// onDebugMessage is the injected diagnostic sink for driver messages. All
// severities are forwarded unfiltered.
func (p *Program) onDebugMessage(msg graphics.DebugMessage) {
	logger.Notice(msg.Text)
}

func (p *Program) buildShader() *shader.Shader {
	s := shader.New(p.api)
	s.LoadStage(p.shaderDir, shader.VertexAsset, graphics.VertexStage)
	s.LoadStage(p.shaderDir, shader.FragmentAsset, graphics.FragmentStage)
	s.BindAttribLocation(positionSlot, positionAttrib)
	s.Link()
	return s
}

func (p *Program) reloadShader(changed string) {
	next := p.buildShader()
	if !next.Linked() {
		logger.Warningf("shader reload failed, keeping previous program")
		next.Delete()
		return
	}
	if p.shader != nil {
		p.shader.Delete()
	}
	p.shader = next
	logger.Noticef("reloaded shaders after change to %s", filepath.Base(changed))
}

// Update handles input and pending shader reloads. Escape requests exit;
// Exit is safe to trigger repeatedly.
func (p *Program) Update(in host.InputState) {
	select {
	case changed := <-p.reload:
		p.reloadShader(changed)
	default:
	}

	if in.IsKeyPressed(host.KeyEscape) {
		p.Exit()
	}
}

// Draw submits one frame: one clear, one 4-vertex triangle-strip draw.
func (p *Program) Draw() {
	p.api.Viewport(0, 0, WindowWidth, WindowHeight)
	p.api.ClearColor(0.0, 0.0, 0.0, 1.0)
	p.api.ColorMask(true, true, true, false)
	p.api.ClearColorBuffer()

	p.shader.Enable()
	p.api.EnableVertexAttrib(positionSlot, 2, p.quad)
	p.api.DrawTriangleStrip(0, 4)
	p.api.DisableVertexAttrib(positionSlot)
	p.shader.Disable()
}

// ReadyToExit reports whether Exit has been requested.
func (p *Program) ReadyToExit() bool {
	return p.exit
}

// Exit flags the program for termination and tears down GPU state. The flag
// never reverses; calling Exit again is a no-op beyond re-running Unload.
func (p *Program) Exit() {
	p.exit = true
	p.Unload()
}

// Unload binds the null program. Idempotent.
func (p *Program) Unload() {
	p.api.UseProgram(0)
}
