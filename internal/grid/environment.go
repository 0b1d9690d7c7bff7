package grid

import (
	"github.com/go-gl/mathgl/mgl32"

	"grid-viewer/internal/scene"
)

// Environment returns the lights added before every grid: a white ambient light and a
// hemisphere light that is black above and white below, placed under the grid.
func Environment() []scene.Object {
	ambient := scene.NewAmbientLight(scene.Hex(0xffffff), 1.0)
	hemi := scene.NewHemisphereLight(scene.Hex(0x000000), scene.Hex(0xffffff), 0.9)
	hemi.Position = mgl32.Vec3{0, -250, 0}
	return []scene.Object{ambient, hemi}
}
