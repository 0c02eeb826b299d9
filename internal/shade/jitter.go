package shade

import (
	"math"

	"github.com/kjalden/sdftrace/internal/geom"
)

// jitterDegrees is the anti-aliasing hook's spread: primary and
// secondary rays wobble by up to this many degrees. Pass an Entropy
// that always returns 0.5 (so the jitter term is zero) for deterministic
// tests.
const jitterDegrees = 0.01

// jitter perturbs ray's direction by a small random rotation around two
// axes perpendicular to it, grounded on the original renderer's
// `perturb`: pick one axis via a cross product with a fixed world axis
// (falling back to a second world axis if the ray is parallel to the
// first), derive the second axis from the first, then rotate by an
// independent random angle around each.
func jitter(ray geom.Ray, degrees float64, rng Entropy) geom.Ray {
	spread := degrees * math.Pi / 180.0
	r := ray.Direction.Normalize()

	axis1 := r.Cross(geom.Right())
	if axis1.Norm2() == 0 {
		axis1 = r.Cross(geom.Up())
	}
	axis1 = axis1.Normalize()
	axis2 := axis1.Cross(r).Normalize()

	angle1 := (rng.Uniform01()*2 - 1) * spread
	angle2 := (rng.Uniform01()*2 - 1) * spread

	direction := r.Rotate(angle1, axis1).Rotate(angle2, axis2)
	return geom.Ray{Origin: ray.Origin, Direction: direction}
}
