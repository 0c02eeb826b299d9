package sdf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/kjalden/sdftrace/internal/geom"
)

var approxOpts = cmpopts.EquateApprox(1e-9, 0.0)

func TestSphereDistanceIsZeroOnSurface(t *testing.T) {
	s := &Sphere{Radius: 2}
	p := geom.Vec3{X: 2, Y: 0, Z: 0}
	if diff := cmp.Diff(s.Distance(p), 0.0, approxOpts); diff != "" {
		t.Errorf("Sphere.Distance on surface mismatch (-got +want):\n%s", diff)
	}
}

func TestSphereDistanceNegativeInside(t *testing.T) {
	s := &Sphere{Radius: 2}
	if d := s.Distance(geom.Zero()); d >= 0 {
		t.Errorf("Sphere.Distance(center) = %v, want negative", d)
	}
}

func TestPlaneDistanceSign(t *testing.T) {
	p := &Plane{Normal: geom.Up()}
	above := geom.Vec3{X: 0, Y: 5, Z: 0}
	below := geom.Vec3{X: 0, Y: -5, Z: 0}
	if p.Distance(above) <= 0 {
		t.Error("point above plane should have positive distance")
	}
	if p.Distance(below) >= 0 {
		t.Error("point below plane should have negative distance")
	}
}

func TestDiskIsSphereIntersectPlane(t *testing.T) {
	d := &Disk{Normal: geom.Up(), Radius: 3}
	onDiskInPlane := geom.Vec3{X: 1, Y: 0, Z: 0}
	if got := d.Distance(onDiskInPlane); got >= 1e-9 {
		t.Errorf("point within disk radius, in plane, should be ~0 or negative, got %v", got)
	}
	farInPlane := geom.Vec3{X: 10, Y: 0, Z: 0}
	if got := d.Distance(farInPlane); got <= 0 {
		t.Errorf("point beyond disk radius should have positive distance, got %v", got)
	}
}

func TestEmptyNeverHit(t *testing.T) {
	e := Empty{}
	if e.Distance(geom.Zero()) <= 1e6 {
		t.Error("Empty.Distance should be effectively infinite")
	}
}

func TestPolyFaceDegenerateIsEmpty(t *testing.T) {
	f := NewPolyFace([]geom.Vec3{{X: 0}, {X: 1}})
	if f.Distance(geom.Zero()) <= 1e6 {
		t.Error("degenerate PolyFace should report effectively infinite distance")
	}
}

func TestPolyFaceTriangleCenterIsNearSurface(t *testing.T) {
	verts := []geom.Vec3{
		{X: -1, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	f := NewPolyFace(verts)
	center := geom.Vec3{X: 0, Y: 1.0 / 3, Z: 0}
	if d := f.Distance(center); d > 0 {
		t.Errorf("centroid of a planar triangle should be on or inside the face, got distance %v", d)
	}
}
