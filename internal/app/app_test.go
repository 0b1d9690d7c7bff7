package app

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"grid-viewer/internal/camera"
	"grid-viewer/internal/engineconfig"
	"grid-viewer/internal/grid"
	"grid-viewer/internal/host"
	"grid-viewer/internal/scene"
	"grid-viewer/internal/selection"
)

type fakeViewport struct{ w, h int }

func (v fakeViewport) ClientSize() (int, int) { return v.w, v.h }

type nopRenderer struct{}

func (nopRenderer) SetSize(int, int) {}

func (nopRenderer) Render(*scene.Scene, *camera.Orthographic) {}

func testPrefs() engineconfig.ViewerPrefs {
	p := engineconfig.Default()
	p.Rows = 4
	p.Step = 1
	p.DefaultZoom = 10
	return p
}

func newTestApp(t *testing.T, p engineconfig.ViewerPrefs) (*App, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	a, err := New(fakeViewport{200, 200}, nopRenderer{}, p, zap.New(core))
	require.NoError(t, err)
	a.TopView()
	return a, logs
}

// center is the screen position of box (2,2), which sits at the origin.
var center = host.PointerEvent{X: 100, Y: 100}

func TestStartsDiscrete(t *testing.T) {
	a, logs := newTestApp(t, testPrefs())
	assert.Equal(t, grid.Discrete, a.Mode())
	assert.Len(t, a.Host().Interactive(), 16)
	assert.Len(t, a.Host().Scene().Children(), 16+2)
	assert.Equal(t, 1, logs.FilterMessage("create naive").Len())
	assert.Equal(t, scene.Hex(0xf3f4f5), a.Host().Scene().Background)
}

func TestToggleModeAlternates(t *testing.T) {
	a, logs := newTestApp(t, testPrefs())

	a.ToggleMode()
	assert.Equal(t, grid.Instanced, a.Mode())
	require.Len(t, a.Host().Interactive(), 1)
	batch, ok := a.Host().Interactive()[0].(*scene.InstancedMesh)
	require.True(t, ok)
	assert.Equal(t, 16, batch.Count())
	assert.Len(t, a.Host().Scene().Children(), 1+2)

	a.ToggleMode()
	assert.Equal(t, grid.Discrete, a.Mode())
	assert.Len(t, a.Host().Interactive(), 16)
	for _, obj := range a.Host().Interactive() {
		assert.IsType(t, &scene.Mesh{}, obj)
	}
	assert.Equal(t, 2, logs.FilterMessage("reset scene").Len())
	assert.Equal(t, 1, logs.FilterMessage("create instanced").Len())
}

func TestStartInstanced(t *testing.T) {
	p := testPrefs()
	p.StartInstanced = true
	a, _ := newTestApp(t, p)
	assert.Equal(t, grid.Instanced, a.Mode())
}

func TestHoverAndClickDiscrete(t *testing.T) {
	a, _ := newTestApp(t, testPrefs())
	pal := a.Palette()

	a.Host().PointerMove(center)
	hovered := a.Controller().Hovered()
	require.Equal(t, selection.Discrete, hovered.Kind())
	assert.Equal(t, "object_2_2", hovered.Mesh().Name)
	assert.Same(t, pal.HoverMaterial, hovered.Mesh().Material)

	a.Host().PointerDown(center)
	assert.Same(t, pal.SelectionMaterial, hovered.Mesh().Material)

	a.Host().PointerMove(host.PointerEvent{X: 110, Y: 100})
	assert.Equal(t, "object_3_2", a.Controller().Hovered().Mesh().Name)
	assert.Same(t, pal.SelectionMaterial, hovered.Mesh().Material)

	// Outside the grid.
	a.Host().PointerDown(host.PointerEvent{X: 195, Y: 5})
	assert.True(t, a.Controller().Selected().IsNone())
	assert.Same(t, pal.DefaultMaterial, hovered.Mesh().Material)

	require.NoError(t, a.Commands().Execute(CmdDeselect))
}

func TestHoverInstanced(t *testing.T) {
	a, _ := newTestApp(t, testPrefs())
	a.ToggleMode()
	pal := a.Palette()

	a.Host().PointerMove(center)
	batch, idx := a.Controller().Hovered().Batch()
	require.NotNil(t, batch)
	assert.Equal(t, 2*4+2, idx)
	c, _ := batch.ColorAt(idx)
	assert.Equal(t, pal.HoverColor, c)

	a.Host().PointerDown(center)
	require.NoError(t, a.Commands().Execute(CmdDeselect))
	c, _ = batch.ColorAt(idx)
	assert.Equal(t, pal.DefaultColor, c)
	assert.True(t, a.Controller().Selected().IsNone())
}

func TestToggleForgetsSelection(t *testing.T) {
	a, _ := newTestApp(t, testPrefs())
	a.Host().PointerMove(center)
	a.Host().PointerDown(center)
	require.False(t, a.Controller().Selected().IsNone())

	require.NoError(t, a.Commands().Execute(CmdToggleMode))
	assert.True(t, a.Controller().Selected().IsNone())
	assert.True(t, a.Controller().Hovered().IsNone())
}

func TestCameraCommands(t *testing.T) {
	a, _ := newTestApp(t, testPrefs())
	cam := a.Host().Camera()
	cam.Zoom = 3
	cam.Target = mgl32.Vec3{1, 0, 1}

	require.NoError(t, a.Commands().Execute(CmdResetCamera))
	assert.Equal(t, mgl32.Vec3{10, 10, 10}, cam.Position)
	assert.Equal(t, mgl32.Vec3{}, cam.Target)
	assert.Equal(t, float32(10), cam.Zoom)

	require.NoError(t, a.Commands().Execute(CmdTopView))
	assert.Equal(t, mgl32.Vec3{0, 19, 0}, cam.Position)
	assert.Equal(t, float32(10), cam.Zoom)
}

func TestClose(t *testing.T) {
	a, _ := newTestApp(t, testPrefs())
	a.Close()
	assert.False(t, a.Host().Running())
	assert.Empty(t, a.Host().Interactive())
	assert.Empty(t, a.Host().Scene().Children())
}
