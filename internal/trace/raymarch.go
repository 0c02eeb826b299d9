// Package trace implements the sphere-tracing loop that walks a ray
// along an SDF's distance field until it finds a surface or passes the
// far plane.
package trace

import (
	"github.com/kjalden/sdftrace/internal/color"
	"github.com/kjalden/sdftrace/internal/geom"
	"github.com/kjalden/sdftrace/internal/sdf"
)

// Hit is the result of a successful Raymarch.
type Hit struct {
	Ray      geom.Ray
	Point    geom.Vec3
	Distance float64 // residual distance at termination, <= epsilon
	Normal   geom.Vec3
	Material color.Material
}

// Raymarch steps pᵢ₊₁ = pᵢ + dᵢ·d̂ where dᵢ = field.Distance(pᵢ), stopping
// when dᵢ <= field.Epsilon() (a hit) or when the traveled distance
// reaches farPlane (a miss, reported as ok=false).
//
// field must be 1-Lipschitz for this to terminate correctly; there is no
// iteration cap — termination is guaranteed in finite steps inside any
// bounded region, and by the far-plane test outside it. The historical
// "distance grew" divergence check is deliberately not implemented: it
// produces false misses near concave features.
func Raymarch(ray geom.Ray, field sdf.SDF, farPlane float64) (Hit, bool) {
	direction := ray.Direction.Normalize()
	point := ray.Origin
	epsilon := field.Epsilon()
	farPlane2 := farPlane * farPlane

	distance := field.Distance(point)
	for distance > epsilon {
		point = point.AddScaled(distance, direction)
		if point.Sub(ray.Origin).Norm2() >= farPlane2 {
			return Hit{}, false
		}
		distance = field.Distance(point)
	}

	mat, ok := field.Material(point)
	if !ok {
		mat = color.Default()
	}
	return Hit{
		Ray:      ray,
		Point:    point,
		Distance: distance,
		Normal:   field.Normal(point),
		Material: mat,
	}, true
}
