package scene

import (
	"github.com/kjalden/sdftrace/internal/sdf"
	"github.com/kjalden/sdftrace/internal/view"
)

// Scene aggregates everything the shader needs to trace a frame. It is
// built once and shared read-only across every pixel.
type Scene struct {
	SDF      sdf.SDF
	Lights   []Light
	View     view.Transform
	FarPlane float64
}
