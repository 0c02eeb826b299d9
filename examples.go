package sdftrace

import (
	"github.com/kjalden/sdftrace/internal/color"
	"github.com/kjalden/sdftrace/internal/geom"
	"github.com/kjalden/sdftrace/internal/scene"
	"github.com/kjalden/sdftrace/internal/sdf"
	"github.com/kjalden/sdftrace/internal/view"
)

// ExampleScene1 is the scene cmd/sdfrender falls back to when no scene
// file is given: a glassy red sphere, a fuzzy blue sphere, a reflective
// green sphere, and a ground plane, lit from above.
func ExampleScene1() *Scene {
	eye := geom.Frame{Origin: geom.Vec3{X: 0, Y: 0, Z: 4}, I: geom.Right(), J: geom.Up(), K: geom.Backward()}

	objs := []sdf.SDF{
		&sdf.Translate{
			SDF: &sdf.Shaded{
				SDF: &sdf.Sphere{Radius: 1.0},
				Mat: color.Material{
					Diffuse: color.New(0.8, 0.2, 0.2), Specular: color.New(1, 1, 1),
					Phong: 40, Reflectivity: 0.4, Opacity: 0.15, IndexOfRefraction: 1.5,
				},
			},
			T: geom.Vec3{X: 0, Y: 0, Z: -5},
		},
		&sdf.Translate{
			SDF: &sdf.Shaded{
				SDF: &sdf.Sphere{Radius: 1.0},
				Mat: color.Material{
					Diffuse: color.New(0.2, 0.2, 0.8), Specular: color.New(0.2, 0.2, 0.2),
					Phong: 4, Reflectivity: 0.2, Opacity: 1,
				},
			},
			T: geom.Vec3{X: 2, Y: 0, Z: -8},
		},
		&sdf.Translate{
			SDF: &sdf.Shaded{
				SDF: &sdf.Sphere{Radius: 1.0},
				Mat: color.Material{
					Diffuse: color.New(0.2, 0.8, 0.2), Specular: color.New(0.8, 0.8, 0.8),
					Phong: 20, Reflectivity: 0.8, Opacity: 1,
				},
			},
			T: geom.Vec3{X: -2, Y: 0, Z: -6},
		},
		&sdf.Translate{
			SDF: &sdf.Shaded{
				SDF: &sdf.Plane{Normal: geom.Up()},
				Mat: color.Material{Diffuse: color.New(0.8, 0.8, 0.8), Specular: color.New(0.1, 0.1, 0.1), Phong: 2, Opacity: 1},
			},
			T: geom.Vec3{X: 0, Y: -1, Z: 0},
		},
	}

	result := objs[0]
	for _, obj := range objs[1:] {
		result = &sdf.Union{A: result, B: obj}
	}

	return &scene.Scene{
		SDF: result,
		Lights: []scene.Light{
			scene.NewLight(geom.Vec3{X: 5, Y: 5, Z: 0}, color.New(1, 1, 1)),
		},
		View:     view.Perspective{EyeFrame: eye, Near: 1, FovDegrees: 50},
		FarPlane: 1000,
	}
}
