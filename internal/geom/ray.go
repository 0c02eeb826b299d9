package geom

import "fmt"

// Ray is a world-space origin and direction. Direction need not be
// unit length; consumers normalize as needed.
type Ray struct {
	Origin, Direction Vec3
}

func (r Ray) String() string {
	return fmt.Sprintf("Ray(Origin: %v, Direction: %v)", r.Origin, r.Direction)
}

// Valid reports whether every component of the ray is a real number.
// A NaN ray is always a programmer error upstream (see shade.Raycast).
func (r Ray) Valid() bool {
	return !r.Origin.IsNaN() && !r.Direction.IsNaN()
}
