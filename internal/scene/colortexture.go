package scene

import (
	"image/color"

	"github.com/chewxy/math32"
)

// ColorTexture lays an InstanceColors table out as RGBA texels, row-major, instance i at
// (i % Width, i / Width). Texels past the last instance stay transparent black.
type ColorTexture struct {
	Width, Height int
	Pixels        []color.RGBA

	version uint64
	synced  bool
}

// NewColorTexture returns a near-square layout with room for n instances.
func NewColorTexture(n int) *ColorTexture {
	if n < 1 {
		n = 1
	}
	w := int(math32.Ceil(math32.Sqrt(float32(n))))
	h := (n + w - 1) / w
	return &ColorTexture{Width: w, Height: h, Pixels: make([]color.RGBA, w*h)}
}

// Sync repacks Pixels from ic and reports whether they changed since the last Sync,
// i.e. whether the texture needs uploading. The first Sync always reports true; later
// ones only after ic.MarkDirty. A nil ic reports false.
func (t *ColorTexture) Sync(ic *InstanceColors) bool {
	if ic == nil || (t.synced && ic.Version() == t.version) {
		return false
	}
	n := min(ic.Len(), len(t.Pixels))
	for i := 0; i < n; i++ {
		r, g, b, a := ic.At(i).RGBA8()
		t.Pixels[i] = color.RGBA{R: r, G: g, B: b, A: a}
	}
	t.version = ic.Version()
	t.synced = true
	return true
}
