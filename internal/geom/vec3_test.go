package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approxOpts = cmpopts.EquateApprox(1e-9, 0.0)

func TestNormalize(t *testing.T) {
	tests := []struct {
		v    Vec3
		want Vec3
	}{
		{v: Vec3{X: 2, Y: 0, Z: 0}, want: Vec3{X: 1, Y: 0, Z: 0}},
		{v: Vec3{X: 0, Y: -12, Z: 5}, want: Vec3{X: 0, Y: -12.0 / 13, Z: 5.0 / 13}},
		{v: Vec3{X: 3, Y: 4, Z: 0}, want: Vec3{X: 3.0 / 5.0, Y: 4.0 / 5.0, Z: 0}},
		{v: Vec3{}, want: Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			got := tt.v.Normalize()
			if diff := cmp.Diff(got, tt.want, approxOpts); diff != "" {
				t.Errorf("Vec3.Normalize() mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestNormalizeIsUnitLength(t *testing.T) {
	vs := []Vec3{
		{X: 2, Y: 0, Z: 0},
		{X: 12, Y: 14, Z: 23},
		{X: 0, Y: 83, Z: 0.32},
	}
	for _, v := range vs {
		t.Run(v.String(), func(t *testing.T) {
			got := v.Normalize().Length()
			if diff := cmp.Diff(got, 1.0, approxOpts); diff != "" {
				t.Errorf("Vec3.Normalize().Length() mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestDotCrossOrthogonality(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: -4, Y: 0, Z: 5}
	cross := a.Cross(b)
	if diff := cmp.Diff(cross.Dot(a), 0.0, approxOpts); diff != "" {
		t.Errorf("a x b . a mismatch (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(cross.Dot(b), 0.0, approxOpts); diff != "" {
		t.Errorf("a x b . b mismatch (-got +want):\n%s", diff)
	}
}

func TestRotateFullTurnIsIdentity(t *testing.T) {
	v := Vec3{X: 1, Y: 2, Z: -3}
	axis := Vec3{X: 0, Y: 1, Z: 0}
	got := v.Rotate(2*math.Pi, axis)
	if diff := cmp.Diff(got, v, approxOpts); diff != "" {
		t.Errorf("full turn mismatch (-got +want):\n%s", diff)
	}
}

func TestRotateQuarterTurnAroundUp(t *testing.T) {
	v := Right()
	got := v.Rotate(math.Pi/2, Up())
	want := Backward()
	if diff := cmp.Diff(got, want, approxOpts); diff != "" {
		t.Errorf("quarter turn mismatch (-got +want):\n%s", diff)
	}
}

func TestOffAxisRemovesComponent(t *testing.T) {
	v := Vec3{X: 1, Y: 1, Z: 0}
	n := Right()
	got := v.OffAxis(n)
	want := Vec3{X: 0, Y: 1, Z: 0}
	if diff := cmp.Diff(got, want, approxOpts); diff != "" {
		t.Errorf("OffAxis mismatch (-got +want):\n%s", diff)
	}
}

func TestIsNaN(t *testing.T) {
	if (Vec3{X: 1, Y: 2, Z: 3}).IsNaN() {
		t.Error("finite vector reported as NaN")
	}
	if !(Vec3{X: math.NaN(), Y: 0, Z: 0}).IsNaN() {
		t.Error("NaN vector not detected")
	}
}

func TestDistance(t *testing.T) {
	a := Vec3{X: 0, Y: 0, Z: 0}
	b := Vec3{X: 3, Y: 4, Z: 0}
	if diff := cmp.Diff(a.Distance(b), 5.0, approxOpts); diff != "" {
		t.Errorf("Distance mismatch (-got +want):\n%s", diff)
	}
}
