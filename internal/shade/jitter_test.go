package shade

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/kjalden/sdftrace/internal/geom"
)

var approxOpts = cmpopts.EquateApprox(1e-9, 0.0)

func TestJitterWithConstantHalfEntropyIsIdentity(t *testing.T) {
	ray := geom.Ray{Origin: geom.Vec3{X: 1, Y: 2, Z: 3}, Direction: geom.Vec3{Z: -1}}
	got := jitter(ray, jitterDegrees, ConstantEntropy(0.5))
	if diff := cmp.Diff(got.Direction, ray.Direction.Normalize(), approxOpts); diff != "" {
		t.Errorf("jitter with 0.5 entropy should not perturb the ray (-got +want):\n%s", diff)
	}
}

func TestJitterPreservesOrigin(t *testing.T) {
	ray := geom.Ray{Origin: geom.Vec3{X: 1, Y: 2, Z: 3}, Direction: geom.Vec3{Z: -1}}
	got := jitter(ray, jitterDegrees, ConstantEntropy(0.9))
	if diff := cmp.Diff(got.Origin, ray.Origin, approxOpts); diff != "" {
		t.Errorf("jitter should not move the ray's origin (-got +want):\n%s", diff)
	}
}

func TestJitterStaysNearlyUnitLength(t *testing.T) {
	ray := geom.Ray{Origin: geom.Zero(), Direction: geom.Vec3{X: 1, Y: 1, Z: 1}}
	got := jitter(ray, jitterDegrees, ConstantEntropy(0.1))
	if diff := cmp.Diff(got.Direction.Length(), 1.0, approxOpts); diff != "" {
		t.Errorf("jitter should preserve unit length (-got +want):\n%s", diff)
	}
}
