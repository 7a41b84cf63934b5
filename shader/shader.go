// Package shader wraps compilation and linking of a vertex/fragment program.
//
// Failures here are diagnostics, not errors: compile and link problems are
// reported through the logger and execution continues, mirroring the
// driver's own debug-output channel. Callers that care (hot reload) can
// still check Linked.
package shader

import (
	"os"
	"path/filepath"

	"github.com/skydome/planewarp/graphics"
	"github.com/skydome/planewarp/log"
)

// Canonical asset names for the fullscreen warp pair.
const (
	VertexAsset   = "FullscreenQuad.vert"
	FragmentAsset = "FullscreenQuad.frag"
)

var logger = log.New("shader")

// Shader is a GPU program assembled from named source assets.
type Shader struct {
	api     graphics.API
	program uint32
	linked  bool
}

// New creates an empty program object. Requires a current GL context.
func New(api graphics.API) *Shader {
	return &Shader{
		api:     api,
		program: api.NewProgram(),
	}
}

// Source resolves a named shader asset from dir, falling back to the
// embedded default when the file is absent or dir is empty.
func Source(dir, name string) string {
	if dir != "" {
		path := filepath.Join(dir, name)
		b, err := os.ReadFile(path)
		if err == nil {
			return string(b)
		}
		if !os.IsNotExist(err) {
			logger.Warningf("failed to read %s: %v", path, err)
		}
	}
	return defaultSource(name)
}

// LoadStage resolves the named asset and compiles it as the given stage,
// attaching it to the program on success.
func (s *Shader) LoadStage(dir, name string, stage graphics.Stage) {
	s.CompileSource(Source(dir, name), stage)
}

// CompileSource compiles source as the given stage and attaches it. Compile
// output is logged; a failed stage is simply not attached.
func (s *Shader) CompileSource(source string, stage graphics.Stage) {
	handle, infoLog, ok := s.api.CompileStage(stage, source)
	if !ok {
		logger.Errorf("%s shader compile failed:\n%s", stage, infoLog)
		s.api.DeleteStage(handle)
		return
	}
	s.api.AttachStage(s.program, handle)
	// The program keeps the stage alive once attached.
	s.api.DeleteStage(handle)
}

// BindAttribLocation binds a numbered attribute slot to a source-level
// attribute name. Takes effect on the next Link.
func (s *Shader) BindAttribLocation(index uint32, name string) {
	s.api.BindAttribLocation(s.program, index, name)
}

// Link links the attached stages. Linker output is logged on failure.
func (s *Shader) Link() bool {
	infoLog, ok := s.api.LinkProgram(s.program)
	if !ok {
		logger.Errorf("program link failed:\n%s", infoLog)
	}
	s.linked = ok
	return ok
}

// Linked reports whether the last Link succeeded.
func (s *Shader) Linked() bool {
	return s.linked
}

// Enable installs the program as the current rendering state.
func (s *Shader) Enable() {
	s.api.UseProgram(s.program)
}

// Disable binds the null program.
func (s *Shader) Disable() {
	s.api.UseProgram(0)
}

// Handle returns the program handle.
func (s *Shader) Handle() uint32 {
	return s.program
}

// Delete frees the program object.
func (s *Shader) Delete() {
	s.api.DeleteProgram(s.program)
}
