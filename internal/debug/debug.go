package debug

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"grid-viewer/internal/stats"
)

const (
	fontSize = 20
	padding  = 12
	// updateInterval: only refresh the panel text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws the stats panel overlay. Off by default.
type Debug struct {
	ShowStats  bool
	font       rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	frameCount uint32
	lastText   string
	lastMode   stats.Mode
}

// New returns a Debug overlay with the stats panel hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowStats sets whether the stats panel is drawn (top-right, green).
func (d *Debug) SetShowStats(show bool) {
	d.ShowStats = show
}

// SetFont sets the font used for the panel. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Draw renders the panel for s on top of the presented frame.
// Text is only recomputed every updateInterval frames or when the panel mode changes.
func (d *Debug) Draw(s *stats.Stats) {
	if !d.ShowStats || s == nil {
		return
	}
	d.frameCount++
	if d.lastText == "" || d.frameCount%updateInterval == 0 || s.Mode() != d.lastMode {
		d.lastText = s.Text()
		d.lastMode = s.Mode()
	}
	text := d.lastText
	if text == "" {
		return
	}

	screenW := float32(rl.GetScreenWidth())
	if d.font.Texture.ID != 0 {
		sz := float32(fontSize)
		pos := rl.NewVector2(screenW-rl.MeasureTextEx(d.font, text, sz, 1).X-padding, padding)
		rl.DrawTextEx(d.font, text, pos, sz, 1, rl.Green)
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, int32(screenW)-w-padding, padding, fontSize, rl.Green)
}
