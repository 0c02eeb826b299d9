package color

// Material holds the Phong shading parameters and refractive properties
// of a surface.
type Material struct {
	Ambient, Diffuse, Specular Color
	Phong                      float64
	Reflectivity               float64 // nominally [0,1]; not clamped here, see spec Open Questions
	Opacity                    float64 // [0,1]; 1 is fully opaque
	IndexOfRefraction          float64 // >0; 1.0 is vacuum
}

// Default returns the material used when an SDF node declares none:
// black ambient, white diffuse, black specular, phong 1, no
// reflectivity, fully opaque, vacuum IOR.
func Default() Material {
	return Material{
		Ambient:           Black(),
		Diffuse:           White(),
		Specular:          Black(),
		Phong:             1,
		Reflectivity:      0,
		Opacity:           1,
		IndexOfRefraction: 1,
	}
}
