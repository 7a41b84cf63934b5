package shader_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skydome/planewarp/graphics"
	"github.com/skydome/planewarp/graphics/gltest"
	"github.com/skydome/planewarp/shader"
)

func TestSourceFallsBackToEmbedded(t *testing.T) {
	src := shader.Source("", shader.VertexAsset)
	assert.Contains(t, src, "vPosition")

	src = shader.Source(t.TempDir(), shader.FragmentAsset)
	assert.Contains(t, src, "gl_FragColor")
}

func TestSourcePrefersFileOnDisk(t *testing.T) {
	dir := t.TempDir()
	custom := "#version 110\nvoid main() { gl_FragColor = vec4(1.0); }\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, shader.FragmentAsset), []byte(custom), 0o644))

	assert.Equal(t, custom, shader.Source(dir, shader.FragmentAsset))
}

func TestLinkBindsAttribBeforeLink(t *testing.T) {
	api := &gltest.Backend{}
	s := shader.New(api)
	s.LoadStage("", shader.VertexAsset, graphics.VertexStage)
	s.LoadStage("", shader.FragmentAsset, graphics.FragmentStage)
	s.BindAttribLocation(0, "vPosition")

	require.True(t, s.Link())
	assert.True(t, s.Linked())

	require.Len(t, api.AttribBinds, 1)
	assert.False(t, api.AttribBinds[0].AfterLink)
	assert.Len(t, api.Attaches, 2)
}

func TestFailedCompileIsNotAttached(t *testing.T) {
	api := &gltest.Backend{
		FailCompile: map[graphics.Stage]bool{graphics.VertexStage: true},
	}
	s := shader.New(api)
	s.LoadStage("", shader.VertexAsset, graphics.VertexStage)
	s.LoadStage("", shader.FragmentAsset, graphics.FragmentStage)

	// Only the fragment stage made it onto the program.
	assert.Len(t, api.Attaches, 1)
}

func TestFailedLinkReported(t *testing.T) {
	api := &gltest.Backend{FailLink: true}
	s := shader.New(api)
	s.LoadStage("", shader.VertexAsset, graphics.VertexStage)

	assert.False(t, s.Link())
	assert.False(t, s.Linked())
}

func TestEnableDisable(t *testing.T) {
	api := &gltest.Backend{}
	s := shader.New(api)
	s.Enable()
	s.Disable()

	require.Len(t, api.UseCalls, 2)
	assert.Equal(t, s.Handle(), api.UseCalls[0])
	assert.Equal(t, uint32(0), api.UseCalls[1])
}

func TestWatchNotifiesOnShaderWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, shader.FragmentAsset)
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	w, err := shader.Watch(dir)
	require.NoError(t, err)
	defer w.Close()

	// Non-shader files never reach the channel.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("b"), 0o644))

	select {
	case name := <-w.Changes():
		assert.Equal(t, ".frag", filepath.Ext(name))
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}
