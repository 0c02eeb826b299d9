// Package sdf implements the signed-distance-field algebra: primitives,
// CSG combinators, and the transform wrappers that compose into the
// scene's implicit-surface tree.
package sdf

import (
	"github.com/kjalden/sdftrace/internal/color"
	"github.com/kjalden/sdftrace/internal/geom"
)

// SDF is a signed distance field: negative inside the solid. Distance
// must be 1-Lipschitz in p on every finite neighborhood for sphere
// tracing to be sound; combinators preserve this except SmoothUnion
// (see its doc comment).
type SDF interface {
	// Distance returns the signed distance from p to the surface.
	Distance(p geom.Vec3) float64
	// Epsilon is this node's surface tolerance for tracing.
	Epsilon() float64
	// Material returns the material at p, if this node (or a child it
	// delegates to) declares one.
	Material(p geom.Vec3) (color.Material, bool)
	// Normal returns the outward-pointing unit surface normal at p.
	Normal(p geom.Vec3) geom.Vec3
}

// ShapeCount walks an SDF tree and counts its Shaded leaves, i.e. the
// number of individually-materialed shapes a scene file built. It does
// not count combinator or transform nodes themselves.
func ShapeCount(s SDF) int {
	switch n := s.(type) {
	case *Shaded:
		return 1
	case *Union:
		return ShapeCount(n.A) + ShapeCount(n.B)
	case *Intersection:
		return ShapeCount(n.A) + ShapeCount(n.B)
	case *Difference:
		return ShapeCount(n.A) + ShapeCount(n.B)
	case *SmoothUnion:
		return ShapeCount(n.A) + ShapeCount(n.B)
	case *Negation:
		return ShapeCount(n.SDF)
	case NegatedRef:
		return ShapeCount(n.SDF)
	case *Translate:
		return ShapeCount(n.SDF)
	case *Scale:
		return ShapeCount(n.SDF)
	case *Rotate:
		return ShapeCount(n.SDF)
	default:
		return 0
	}
}

// DefaultNormal computes the surface normal as the central-difference
// gradient of s.Distance at scale s.Epsilon(), normalized. Primitives
// that don't track an explicit normal (Sphere, Plane, Disk) use this;
// PolyFace overrides it with its stored face normal.
func DefaultNormal(s SDF, p geom.Vec3) geom.Vec3 {
	e := s.Epsilon()
	return geom.Vec3{
		X: s.Distance(p.Add(geom.Right().Scale(e))) - s.Distance(p.Add(geom.Left().Scale(e))),
		Y: s.Distance(p.Add(geom.Up().Scale(e))) - s.Distance(p.Add(geom.Down().Scale(e))),
		Z: s.Distance(p.Add(geom.Forward().Scale(e))) - s.Distance(p.Add(geom.Backward().Scale(e))),
	}.Normalize()
}
