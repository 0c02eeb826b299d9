package geom

import (
	"math"
	"testing"
)

func TestRayValid(t *testing.T) {
	valid := Ray{Origin: Vec3{X: 1, Y: 2, Z: 3}, Direction: Right()}
	if !valid.Valid() {
		t.Error("finite ray reported invalid")
	}

	badOrigin := Ray{Origin: Vec3{X: math.NaN()}, Direction: Right()}
	if badOrigin.Valid() {
		t.Error("NaN origin not detected")
	}

	badDirection := Ray{Origin: Zero(), Direction: Vec3{Y: math.NaN()}}
	if badDirection.Valid() {
		t.Error("NaN direction not detected")
	}
}
