package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skydome/planewarp/config"
	"github.com/skydome/planewarp/options"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "planewarp.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesSetKeysOnly(t *testing.T) {
	path := writeConfig(t, `
shader_dir = "/srv/dome/shaders"
vsync = false

[record]
fps = 30
output = "dome.mp4"
`)

	f, err := config.Load(path)
	require.NoError(t, err)

	o := options.Default()
	f.Apply(&o)

	assert.Equal(t, "/srv/dome/shaders", o.ShaderDir)
	assert.False(t, o.VSync)
	assert.Equal(t, 30, o.FPS)
	assert.Equal(t, "dome.mp4", o.OutputFile)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, 10.0, o.Duration)
	assert.Equal(t, "h264", o.Codec)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `vsync = [broken`)
	_, err := config.Load(path)
	assert.Error(t, err)
}
