// Package app is the grid viewer session: it fills the render host with lights and the
// box grid, routes picks into the selection controller and exposes the keyboard commands.
package app

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"grid-viewer/internal/commands"
	"grid-viewer/internal/engineconfig"
	"grid-viewer/internal/grid"
	"grid-viewer/internal/host"
	"grid-viewer/internal/pick"
	"grid-viewer/internal/scene"
	"grid-viewer/internal/selection"
	"grid-viewer/internal/stats"
)

// Command names registered by the session.
const (
	CmdDeselect    = "deselect"
	CmdResetCamera = "reset-camera"
	CmdTopView     = "top-view"
	CmdToggleMode  = "toggle-mode"
)

var (
	defaultPose = mgl32.Vec3{10, 10, 10}
	topPose     = mgl32.Vec3{0, 19, 0}
)

// App is one viewer session.
type App struct {
	prefs engineconfig.ViewerPrefs
	grid  grid.Config
	log   *zap.Logger

	host     *host.Host
	ctrl     *selection.Controller
	palette  selection.Palette
	commands *commands.Registry
	mode     grid.Mode
}

// New builds the host on vp and r, sets the default camera and builds the first grid.
// prefs must already be validated.
func New(vp host.Viewport, r host.Renderer, prefs engineconfig.ViewerPrefs, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	colors, err := prefs.Palette()
	if err != nil {
		return nil, err
	}
	mode, showStats, err := stats.ParseMode(prefs.StatsMode)
	if err != nil {
		return nil, err
	}

	a := &App{
		prefs:   prefs,
		grid:    prefs.Grid(),
		log:     log,
		palette: newPalette(colors),
	}
	a.ctrl = selection.NewController(a.palette, log.Named("selection"))
	a.host = host.New(vp, r, host.Options{
		OnHover: a.ctrl.HandleHover,
		OnClick: func(hit *pick.Intersection, _ host.PointerEvent) {
			a.ctrl.HandleClick(hit)
		},
		ShowStats: showStats,
		StatsMode: mode,
		FPSLimit:  prefs.FPSLimit,
		Logger:    log.Named("host"),
	})
	a.host.Scene().Background = colors.Background

	a.commands = commands.NewRegistry()
	a.commands.Register(CmdDeselect, "clear the selection", a.cmd(a.Deselect))
	a.commands.Register(CmdResetCamera, "restore the default camera", a.cmd(a.ResetCamera))
	a.commands.Register(CmdTopView, "look straight down at the grid", a.cmd(a.TopView))
	a.commands.Register(CmdToggleMode, "rebuild the grid as discrete meshes or one instanced batch", a.cmd(a.ToggleMode))

	a.ResetCamera()
	start := grid.Discrete
	if prefs.StartInstanced {
		start = grid.Instanced
	}
	a.build(start)
	return a, nil
}

func newPalette(c engineconfig.Palette) selection.Palette {
	return selection.Palette{
		DefaultMaterial:   scene.NewMaterial("default", c.Default, c.Emissive),
		HoverMaterial:     scene.NewMaterial("hover", c.Hover, c.Emissive),
		SelectionMaterial: scene.NewMaterial("selection", c.Selection, c.Emissive),
		DefaultColor:      c.Default,
		HoverColor:        c.Hover,
		SelectionColor:    c.Selection,
	}
}

func (a *App) cmd(fn func()) func() error {
	return func() error {
		fn()
		return nil
	}
}

// Host returns the render host.
func (a *App) Host() *host.Host { return a.host }

// Controller returns the hover/selection controller.
func (a *App) Controller() *selection.Controller { return a.ctrl }

// Commands returns the keyboard commands.
func (a *App) Commands() *commands.Registry { return a.commands }

// Mode is how the current grid is built.
func (a *App) Mode() grid.Mode { return a.mode }

// Palette returns the materials and colors used for hover and selection.
func (a *App) Palette() selection.Palette { return a.palette }

// Deselect clears the selection.
func (a *App) Deselect() {
	a.ctrl.Deselect()
}

// ResetCamera restores the default zoom and the diagonal view of the origin.
func (a *App) ResetCamera() {
	a.setPose(defaultPose)
}

// TopView looks straight down at the origin with the default zoom.
func (a *App) TopView() {
	a.setPose(topPose)
}

func (a *App) setPose(pos mgl32.Vec3) {
	cam := a.host.Camera()
	cam.Zoom = a.prefs.DefaultZoom
	cam.Position = pos
	cam.Target = mgl32.Vec3{}
	cam.UpdateProjectionMatrix()
}

// ToggleMode discards the current grid and builds it again in the other mode.
func (a *App) ToggleMode() {
	a.log.Info("reset scene")
	a.host.Reset()
	a.ctrl.Reset()
	a.build(a.mode.Next())
}

func (a *App) build(mode grid.Mode) {
	a.host.Scene().Add(grid.Environment()...)
	switch mode {
	case grid.Instanced:
		a.log.Info("create instanced", zap.Int("count", a.grid.Count()))
		batch := grid.BuildInstanced(a.grid, a.palette.DefaultMaterial, a.palette.DefaultColor)
		a.host.Scene().Add(batch)
		a.host.AddInteractive(batch)
	default:
		a.log.Info("create naive", zap.Int("count", a.grid.Count()))
		meshes := grid.BuildDiscrete(a.grid, a.palette.DefaultMaterial)
		objs := make([]scene.Object, len(meshes))
		for i, m := range meshes {
			objs[i] = m
		}
		a.host.Scene().Add(objs...)
		a.host.AddInteractive(objs...)
	}
	a.mode = mode
}

// Close stops the loop and releases the scene.
func (a *App) Close() {
	a.host.Dispose()
}
