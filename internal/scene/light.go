// Package scene aggregates the SDF tree, lights, and camera into the
// renderable unit the shader and tracer operate on.
package scene

import (
	"math"

	"github.com/kjalden/sdftrace/internal/color"
	"github.com/kjalden/sdftrace/internal/geom"
)

// Light is a point light source with inverse-square-ish attenuation.
type Light struct {
	Position geom.Vec3
	Color    color.Color
	Atten    float64 // >0
}

// NewLight constructs a Light with the default attenuation used by the
// scene-file "light" command.
func NewLight(position geom.Vec3, c color.Color) Light {
	return Light{Position: position, Color: c, Atten: 50}
}

// ColorAt returns this light's effective color at p, attenuated by
// min(1, atten^2 / |p-position|^2).
func (l Light) ColorAt(p geom.Vec3) color.Color {
	dist2 := p.Distance(l.Position)
	dist2 *= dist2
	if dist2 == 0 {
		return l.Color
	}
	atten := math.Min(1.0, (l.Atten*l.Atten)/dist2)
	return l.Color.Scale(atten)
}

// ShadowRay returns the ray from p toward this light. Its direction is
// not normalized; its length is the distance to the light, which bounds
// the shadow trace.
func (l Light) ShadowRay(p geom.Vec3) geom.Ray {
	return geom.Ray{Origin: p, Direction: l.Position.Sub(p)}
}
