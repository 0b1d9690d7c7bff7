package scene

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Node
	Color     Color
	Intensity float32
}

// NewAmbientLight returns an ambient light.
func NewAmbientLight(c Color, intensity float32) *AmbientLight {
	return &AmbientLight{Node: newNode("ambient"), Color: c, Intensity: intensity}
}

// HemisphereLight blends from GroundColor to SkyColor by how much a normal points up.
type HemisphereLight struct {
	Node
	SkyColor    Color
	GroundColor Color
	Intensity   float32
}

// NewHemisphereLight returns a hemisphere light.
func NewHemisphereLight(sky, ground Color, intensity float32) *HemisphereLight {
	return &HemisphereLight{Node: newNode("hemisphere"), SkyColor: sky, GroundColor: ground, Intensity: intensity}
}
