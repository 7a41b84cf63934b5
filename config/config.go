// Package config loads the optional TOML settings file. Fields are pointers
// so an absent key leaves the corresponding default untouched.
package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/skydome/planewarp/options"
)

type File struct {
	ShaderDir *string `toml:"shader_dir"`
	VSync     *bool   `toml:"vsync"`

	Record Record `toml:"record"`
}

type Record struct {
	Duration   *float64 `toml:"duration"`
	FPS        *int     `toml:"fps"`
	Output     *string  `toml:"output"`
	Codec      *string  `toml:"codec"`
	FFmpegPath *string  `toml:"ffmpeg_path"`
}

// Load reads and parses the TOML file at path.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var f File
	if err := toml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &f, nil
}

// Apply overlays the file's set values onto o.
func (f *File) Apply(o *options.Options) {
	if f.ShaderDir != nil {
		o.ShaderDir = *f.ShaderDir
	}
	if f.VSync != nil {
		o.VSync = *f.VSync
	}
	if f.Record.Duration != nil {
		o.Duration = *f.Record.Duration
	}
	if f.Record.FPS != nil {
		o.FPS = *f.Record.FPS
	}
	if f.Record.Output != nil {
		o.OutputFile = *f.Record.Output
	}
	if f.Record.Codec != nil {
		o.Codec = *f.Record.Codec
	}
	if f.Record.FFmpegPath != nil {
		o.FFmpegPath = *f.Record.FFmpegPath
	}
}
