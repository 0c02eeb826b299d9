package sdf

import (
	"math"

	"github.com/kjalden/sdftrace/internal/color"
	"github.com/kjalden/sdftrace/internal/geom"
)

// maxFloat is the distance Empty (and a degenerate PolyFace) return:
// 2^53, the largest float64 that still round-trips through integer
// arithmetic, used instead of math.MaxFloat64 so the far-plane test
// always wins cleanly over a single marching step.
const maxFloat = 1 << 53

// Sphere is centered at the origin in its local frame; place it with
// Translate/Rotate.
type Sphere struct {
	Radius float64
}

func (s *Sphere) Distance(p geom.Vec3) float64 { return p.Length() - s.Radius }
func (s *Sphere) Epsilon() float64             { return s.Radius / 10000.0 }
func (s *Sphere) Material(geom.Vec3) (color.Material, bool) {
	return color.Material{}, false
}
func (s *Sphere) Normal(p geom.Vec3) geom.Vec3 { return DefaultNormal(s, p) }

// Plane is the half-space Normal·p <= 0, "inside" the plane.
type Plane struct {
	Normal geom.Vec3
}

func (pl *Plane) Distance(p geom.Vec3) float64 { return pl.Normal.Dot(p) }
func (pl *Plane) Epsilon() float64             { return 1e-3 }
func (pl *Plane) Material(geom.Vec3) (color.Material, bool) {
	return color.Material{}, false
}
func (pl *Plane) Normal(p geom.Vec3) geom.Vec3 { return DefaultNormal(pl, p) }

// Disk is the intersection of a Plane and a Sphere: a flat, radius-R
// disc lying in the plane through the origin with the given normal.
type Disk struct {
	Normal geom.Vec3
	Radius float64
}

func (d *Disk) Distance(p geom.Vec3) float64 {
	return math.Max(d.Normal.Dot(p), p.Length()-d.Radius)
}
func (d *Disk) Epsilon() float64 { return d.Radius / 1000.0 }
func (d *Disk) Material(geom.Vec3) (color.Material, bool) {
	return color.Material{}, false
}
func (d *Disk) Normal(p geom.Vec3) geom.Vec3 { return DefaultNormal(d, p) }

// polyFaceThickness is the slab thickness behind a PolyFace's front
// plane.
const polyFaceThickness = 0.1

// PolyFace is a finite, thick, convex polygonal slab defined by an
// ordered ring of coplanar-ish vertices. Fewer than 3 vertices is
// degenerate and reports maxFloat distance (renders as empty) rather
// than failing.
type PolyFace struct {
	Vertices []geom.Vec3

	normal    geom.Vec3
	center    geom.Vec3
	epsilon   float64
	degenerate bool
}

// NewPolyFace builds a PolyFace from an ordered vertex ring, precomputing
// its face normal (v1-c)x(v0-c) and its epsilon (shortest edge / 1000).
func NewPolyFace(vertices []geom.Vec3) *PolyFace {
	f := &PolyFace{Vertices: vertices}
	if len(vertices) < 3 {
		f.degenerate = true
		return f
	}
	var sum geom.Vec3
	for _, v := range vertices {
		sum = sum.Add(v)
	}
	f.center = sum.Scale(1.0 / float64(len(vertices)))
	f.normal = vertices[1].Sub(f.center).Cross(vertices[0].Sub(f.center)).Normalize()

	minEdge := math.Inf(1)
	for i := range vertices {
		j := (i + 1) % len(vertices)
		edgeLen := vertices[i].Distance(vertices[j])
		if edgeLen < minEdge {
			minEdge = edgeLen
		}
	}
	f.epsilon = minEdge / 1000.0
	return f
}

func (f *PolyFace) Distance(p geom.Vec3) float64 {
	if f.degenerate {
		return maxFloat
	}
	rel := p.Sub(f.center)
	d := f.normal.Dot(rel)
	d = math.Max(d, -f.normal.Dot(rel)-polyFaceThickness)

	halfPi := math.Pi / 2
	for i := range f.Vertices {
		j := (i + 1) % len(f.Vertices)
		edge := f.Vertices[j].Sub(f.Vertices[i])
		edgeNormal := edge.Rotate(halfPi, f.normal)
		d = math.Max(d, edgeNormal.Dot(p.Sub(f.Vertices[i]))-f.epsilon)
	}
	return d
}

func (f *PolyFace) Epsilon() float64 {
	if f.degenerate {
		return 1
	}
	return f.epsilon
}

func (f *PolyFace) Material(geom.Vec3) (color.Material, bool) {
	return color.Material{}, false
}

// Normal returns the stored face normal directly, independent of p.
func (f *PolyFace) Normal(geom.Vec3) geom.Vec3 { return f.normal }

// Empty is the SDF with no surface: d ≡ maxFloat, epsilon 1.
type Empty struct{}

func (Empty) Distance(geom.Vec3) float64 { return maxFloat }
func (Empty) Epsilon() float64           { return 1 }
func (Empty) Material(geom.Vec3) (color.Material, bool) {
	return color.Material{}, false
}
func (e Empty) Normal(p geom.Vec3) geom.Vec3 { return DefaultNormal(e, p) }
