// Package stats measures frame rate, frame time and heap use for the on-screen
// performance overlay. Drawing lives in package debug.
package stats

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/chewxy/math32"
)

// Mode selects which panel the overlay shows.
type Mode int

const (
	ModeFPS Mode = iota // frames per second
	ModeMS              // milliseconds per tick
	ModeMB              // heap allocation in MiB
)

// ParseMode maps "fps", "ms" or "mb" to a Mode. "off" and "" return enabled=false.
func ParseMode(s string) (m Mode, enabled bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "none":
		return 0, false, nil
	case "fps":
		return ModeFPS, true, nil
	case "ms":
		return ModeMS, true, nil
	case "mb":
		return ModeMB, true, nil
	}
	return 0, false, fmt.Errorf("unknown stats mode %q", s)
}

func (m Mode) String() string {
	switch m {
	case ModeFPS:
		return "FPS"
	case ModeMS:
		return "MS"
	case ModeMB:
		return "MB"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Panel is the latest value of one measurement and the range seen so far.
type Panel struct {
	Value, Min, Max float32
}

func (p *Panel) update(v float32) {
	p.Value = v
	p.Min = math32.Min(p.Min, v)
	p.Max = math32.Max(p.Max, v)
}

func newPanel() Panel {
	return Panel{Min: math32.Inf(1), Max: math32.Inf(-1)}
}

// Stats is fed by Begin/End around each tick. FPS and MB refresh once per second, MS every tick.
type Stats struct {
	mode Mode

	now func() time.Time
	mem func() float32

	begin  time.Time
	prev   time.Time
	frames int

	panels [3]Panel
}

// New returns stats showing the given panel.
func New(mode Mode) *Stats {
	s := &Stats{mode: mode, now: time.Now, mem: heapMiB}
	for i := range s.panels {
		s.panels[i] = newPanel()
	}
	s.begin = s.now()
	s.prev = s.begin
	return s
}

// Mode is the panel being shown.
func (s *Stats) Mode() Mode {
	return s.mode
}

// SetMode switches the panel being shown.
func (s *Stats) SetMode(m Mode) {
	s.mode = m
}

// Begin marks the start of a tick.
func (s *Stats) Begin() {
	s.begin = s.now()
}

// End marks the end of a tick and refreshes the panels.
func (s *Stats) End() {
	t := s.now()
	s.frames++
	s.panels[ModeMS].update(float32(t.Sub(s.begin).Seconds() * 1000))

	elapsed := t.Sub(s.prev)
	if elapsed < time.Second {
		return
	}
	s.panels[ModeFPS].update(float32(float64(s.frames) / elapsed.Seconds()))
	s.panels[ModeMB].update(s.mem())
	s.prev = t
	s.frames = 0
}

// Panel returns the current reading for m.
func (s *Stats) Panel(m Mode) Panel {
	return s.panels[m]
}

// Text formats the shown panel, e.g. "60 FPS (58-61)". Empty until the first reading.
func (s *Stats) Text() string {
	p := s.panels[s.mode]
	if math32.IsInf(p.Min, 1) {
		return ""
	}
	if s.mode == ModeMB {
		return fmt.Sprintf("%.2f MB (%.2f-%.2f)", p.Value, p.Min, p.Max)
	}
	return fmt.Sprintf("%d %s (%d-%d)", round(p.Value), s.mode, round(p.Min), round(p.Max))
}

func round(v float32) int {
	return int(math32.Round(v))
}

func heapMiB() float32 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float32(m.Alloc) / (1024 * 1024)
}
