package warp_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skydome/planewarp/graphics/gltest"
	"github.com/skydome/planewarp/host"
	"github.com/skydome/planewarp/log"
	"github.com/skydome/planewarp/warp"
)

type fakeInput map[host.Key]bool

func (in fakeInput) IsKeyPressed(key host.Key) bool {
	return in[key]
}

func newLoaded(t *testing.T) (*warp.Program, *gltest.Backend) {
	t.Helper()
	api := &gltest.Backend{}
	p := warp.New(api, "")
	p.Load()
	return p, api
}

func TestInitializeWritesFixedConfig(t *testing.T) {
	p := warp.New(&gltest.Backend{}, "")

	// Prior contents must not survive.
	cfg := &host.Config{
		Title:        "stale",
		WindowWidth:  9999,
		WindowHeight: 1,
		GLMajor:      4,
		GLMinor:      6,
	}
	p.Initialize(cfg)

	assert.Equal(t, "Planetarium Warper", cfg.Title)
	assert.Equal(t, 512, cfg.WindowWidth)
	assert.Equal(t, 512, cfg.WindowHeight)
	assert.Equal(t, 2, cfg.GLMajor)
	assert.Equal(t, 0, cfg.GLMinor)
}

func TestReadyToExitFalseAfterConstruction(t *testing.T) {
	p := warp.New(&gltest.Backend{}, "")
	assert.False(t, p.ReadyToExit())
}

func TestUpdateEscapeRequestsExit(t *testing.T) {
	p, api := newLoaded(t)

	p.Update(fakeInput{})
	assert.False(t, p.ReadyToExit())

	p.Update(fakeInput{host.KeyEscape: true})
	assert.True(t, p.ReadyToExit())

	// Unload ran: null program bound.
	require.NotEmpty(t, api.UseCalls)
	assert.Equal(t, uint32(0), api.UseCalls[len(api.UseCalls)-1])
}

func TestExitIsIdempotent(t *testing.T) {
	p, _ := newLoaded(t)
	p.Exit()
	p.Exit()
	assert.True(t, p.ReadyToExit())
}

func TestLoadBuildsProgramAndQuad(t *testing.T) {
	api := &gltest.Backend{}
	p := warp.New(api, "")
	p.Load()

	require.Len(t, api.Programs, 1)
	assert.True(t, api.Linked[api.Programs[0]])
	assert.Len(t, api.Attaches, 2)

	// Attribute slot 0 bound to vPosition before the link.
	require.Len(t, api.AttribBinds, 1)
	bind := api.AttribBinds[0]
	assert.Equal(t, api.Programs[0], bind.Program)
	assert.Equal(t, uint32(0), bind.Index)
	assert.Equal(t, "vPosition", bind.Name)
	assert.False(t, bind.AfterLink)

	// One static quad buffer, 4 vertices of 2 floats each.
	require.Len(t, api.Buffers, 1)
	for _, data := range api.Buffers {
		assert.Len(t, data, 8)
	}

	assert.NotNil(t, api.DebugCB)
}

func TestDrawSubmitsOneClearOneStrip(t *testing.T) {
	p, api := newLoaded(t)

	for i := 1; i <= 3; i++ {
		p.Draw()
		assert.Equal(t, i, api.Clears)
		require.Len(t, api.Draws, i)
		assert.Equal(t, gltest.DrawCall{First: 0, Count: 4}, api.Draws[i-1])
	}

	// Fixed viewport, alpha writes disabled.
	require.NotEmpty(t, api.Viewports)
	assert.Equal(t, [4]int32{0, 0, 512, 512}, api.Viewports[0])
	require.NotEmpty(t, api.ColorMasks)
	assert.Equal(t, [4]bool{true, true, true, false}, api.ColorMasks[0])

	// Program enabled then disabled around the submission.
	require.GreaterOrEqual(t, len(api.UseCalls), 2)
	assert.Equal(t, uint32(0), api.UseCalls[len(api.UseCalls)-1])
}

func TestFailedReloadKeepsPreviousProgram(t *testing.T) {
	api := &gltest.Backend{}
	p := warp.New(api, "")
	changes := make(chan string, 1)
	p.WatchShaders(changes)
	p.Load()
	original := api.Programs[0]

	api.FailLink = true
	changes <- "FullscreenQuad.frag"
	p.Update(fakeInput{})

	// Replacement program was discarded, original still drawn.
	require.Len(t, api.Programs, 2)
	assert.Contains(t, api.DeletedProgs, api.Programs[1])
	p.Draw()
	assert.Contains(t, api.UseCalls, original)
	assert.NotContains(t, api.DeletedProgs, original)
}

func TestReloadSwapsProgram(t *testing.T) {
	api := &gltest.Backend{}
	p := warp.New(api, "")
	changes := make(chan string, 1)
	p.WatchShaders(changes)
	p.Load()
	original := api.Programs[0]

	changes <- "FullscreenQuad.frag"
	p.Update(fakeInput{})

	require.Len(t, api.Programs, 2)
	assert.Contains(t, api.DeletedProgs, original)
	p.Draw()
	assert.Contains(t, api.UseCalls, api.Programs[1])
}

func TestDebugMessagesReachTheLog(t *testing.T) {
	var buf bytes.Buffer
	log.SetSink(&buf)
	defer log.SetSink(os.Stdout)

	_, api := newLoaded(t)
	api.Emit(0, "GL_INVALID_OPERATION in glDrawArrays")

	assert.Contains(t, buf.String(), "GL_INVALID_OPERATION in glDrawArrays")
}
