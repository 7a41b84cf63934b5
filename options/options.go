package options

// Options are the harness-level settings resolved from the config file and
// CLI flags. Program constants (title, surface size, GL version) are not
// configurable; they live in the warp package.
type Options struct {
	// Directory holding FullscreenQuad.vert/.frag. Empty means embedded
	// sources only.
	ShaderDir string

	// Swap interval 1 when true.
	VSync bool

	// Record settings.
	Duration   float64
	FPS        int
	OutputFile string
	Codec      string
	FFmpegPath string
}

// Default returns the baseline options before config file and flags apply.
func Default() Options {
	return Options{
		ShaderDir:  "assets/shaders",
		VSync:      true,
		Duration:   10.0,
		FPS:        60,
		OutputFile: "output.mp4",
		Codec:      "h264",
	}
}
