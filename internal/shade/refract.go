package shade

import (
	"fmt"
	"math"

	"github.com/kjalden/sdftrace/internal/geom"
)

// refract computes the direction of the ray transmitted through a
// surface with normal N, going from a medium of index n1 into one of
// index n2.
//
// This rotates the normal by the angle Snell's law predicts rather than
// deriving the vector form directly, and it does not model total
// internal reflection: in that regime the sine of theta2 is clamped to 1,
// so it returns a direction perpendicular to the normal (a grazing ray)
// instead of a reflected one.
// This is a known limitation carried over from the source this renderer
// is based on (see spec's known-quirks notes); exposing a proper TIR
// branch is a candidate follow-up, not implemented here.
func refract(incident, normal geom.Vec3, n1, n2 float64) geom.Vec3 {
	if math.Abs(n1-n2) < 1e-4 {
		return incident
	}
	i := incident.Normalize()
	cosTheta1 := -normal.Dot(i)
	if math.Abs(math.Abs(cosTheta1)-1) < 1e-4 {
		return incident
	}
	theta1 := math.Acos(clamp(cosTheta1, -1, 1))
	theta2 := math.Asin(clamp(n1*math.Sin(theta1)/n2, -1, 1))

	axis := i.Cross(normal).Normalize()
	result := normal.Scale(sign(i.Dot(normal))).Rotate(theta2, axis)
	if result.IsNaN() {
		panic(fmt.Sprintf("refract produced NaN: incident=%v normal=%v n1=%v n2=%v", incident, normal, n1, n2))
	}
	return result
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}
