package sdf

import (
	"math"

	"github.com/kjalden/sdftrace/internal/color"
	"github.com/kjalden/sdftrace/internal/geom"
)

func minEpsilon(a, b SDF) float64 {
	return math.Min(a.Epsilon(), b.Epsilon())
}

// closerChild returns whichever of a, b has the smaller distance at p.
// Union and Intersection take that child's material and normal (the
// "closer child wins" rule); Difference takes only its normal.
func closerChild(a, b SDF, p geom.Vec3) SDF {
	if a.Distance(p) < b.Distance(p) {
		return a
	}
	return b
}

// Union is the CSG union of two SDFs: min of the two distances.
type Union struct{ A, B SDF }

func (u *Union) Distance(p geom.Vec3) float64 { return math.Min(u.A.Distance(p), u.B.Distance(p)) }
func (u *Union) Epsilon() float64             { return minEpsilon(u.A, u.B) }
func (u *Union) Material(p geom.Vec3) (color.Material, bool) {
	return closerChild(u.A, u.B, p).Material(p)
}
func (u *Union) Normal(p geom.Vec3) geom.Vec3 { return closerChild(u.A, u.B, p).Normal(p) }

// Intersection is the CSG intersection of two SDFs: max of the two
// distances.
type Intersection struct{ A, B SDF }

func (i *Intersection) Distance(p geom.Vec3) float64 {
	return math.Max(i.A.Distance(p), i.B.Distance(p))
}
func (i *Intersection) Epsilon() float64 { return minEpsilon(i.A, i.B) }
func (i *Intersection) Material(p geom.Vec3) (color.Material, bool) {
	return closerChild(i.A, i.B, p).Material(p)
}
func (i *Intersection) Normal(p geom.Vec3) geom.Vec3 { return closerChild(i.A, i.B, p).Normal(p) }

// Difference subtracts B from A: max(dA, -dB). Its material always
// comes from A; its normal follows the closer-child rule like
// Union/Intersection.
type Difference struct{ A, B SDF }

func (d *Difference) Distance(p geom.Vec3) float64 {
	return math.Max(d.A.Distance(p), -d.B.Distance(p))
}
func (d *Difference) Epsilon() float64 { return minEpsilon(d.A, d.B) }
func (d *Difference) Material(p geom.Vec3) (color.Material, bool) {
	return d.A.Material(p)
}
func (d *Difference) Normal(p geom.Vec3) geom.Vec3 { return closerChild(d.A, d.B, p).Normal(p) }

// Negation owns a child SDF and inverts it: -d, with the normal flipped.
// Its distance is in general not a lower bound on exterior distance. The
// scene-file "background" command uses it to turn a large sphere into an
// inward-facing enclosure that is traced as part of the scene; the
// shader's interior traces use the non-owning NegatedRef instead.
type Negation struct{ SDF SDF }

func (n *Negation) Distance(p geom.Vec3) float64 { return -n.SDF.Distance(p) }
func (n *Negation) Epsilon() float64             { return n.SDF.Epsilon() }
func (n *Negation) Material(p geom.Vec3) (color.Material, bool) {
	return n.SDF.Material(p)
}
func (n *Negation) Normal(p geom.Vec3) geom.Vec3 { return n.SDF.Normal(p).Neg() }

// NegatedRef is a transient, non-owning view of an existing SDF with
// its distance and normal inverted — the same operation as Negation,
// but constructed on the stack by the shader each time it needs to
// trace the inverted scene (finding the far side of a solid for
// refraction, or the back face of a translucent volume for the shadow
// walk) without rebuilding or cloning the scene tree.
type NegatedRef struct{ SDF SDF }

func (n NegatedRef) Distance(p geom.Vec3) float64 { return -n.SDF.Distance(p) }
func (n NegatedRef) Epsilon() float64             { return n.SDF.Epsilon() }
func (n NegatedRef) Material(p geom.Vec3) (color.Material, bool) {
	return n.SDF.Material(p)
}
func (n NegatedRef) Normal(p geom.Vec3) geom.Vec3 { return n.SDF.Normal(p).Neg() }

// Translate shifts the child SDF by t.
type Translate struct {
	SDF SDF
	T   geom.Vec3
}

func (t *Translate) Distance(p geom.Vec3) float64 { return t.SDF.Distance(p.Sub(t.T)) }
func (t *Translate) Epsilon() float64             { return t.SDF.Epsilon() }
func (t *Translate) Material(p geom.Vec3) (color.Material, bool) {
	return t.SDF.Material(p.Sub(t.T))
}
func (t *Translate) Normal(p geom.Vec3) geom.Vec3 { return t.SDF.Normal(p.Sub(t.T)) }

// Scale uniformly scales the child SDF by s.
type Scale struct {
	SDF SDF
	S   float64
}

func (s *Scale) Distance(p geom.Vec3) float64 {
	return s.SDF.Distance(p.Scale(1.0/s.S)) * s.S
}
func (s *Scale) Epsilon() float64 { return s.SDF.Epsilon() }
func (s *Scale) Material(p geom.Vec3) (color.Material, bool) {
	return s.SDF.Material(p.Scale(1.0 / s.S))
}
func (s *Scale) Normal(p geom.Vec3) geom.Vec3 { return s.SDF.Normal(p.Scale(1.0 / s.S)) }

// Rotate rotates the child SDF by angle radians around axis.
type Rotate struct {
	SDF   SDF
	Angle float64
	Axis  geom.Vec3
}

func (r *Rotate) Distance(p geom.Vec3) float64 {
	return r.SDF.Distance(p.Rotate(-r.Angle, r.Axis))
}
func (r *Rotate) Epsilon() float64 { return r.SDF.Epsilon() }
func (r *Rotate) Material(p geom.Vec3) (color.Material, bool) {
	return r.SDF.Material(p.Rotate(-r.Angle, r.Axis))
}
func (r *Rotate) Normal(p geom.Vec3) geom.Vec3 { return r.SDF.Normal(p.Rotate(-r.Angle, r.Axis)) }

// Shaded attaches a material to a child SDF, overriding whatever
// material (if any) the child declares.
type Shaded struct {
	SDF SDF
	Mat color.Material
}

func (s *Shaded) Distance(p geom.Vec3) float64 { return s.SDF.Distance(p) }
func (s *Shaded) Epsilon() float64             { return s.SDF.Epsilon() }
func (s *Shaded) Material(geom.Vec3) (color.Material, bool) {
	return s.Mat, true
}
func (s *Shaded) Normal(p geom.Vec3) geom.Vec3 { return s.SDF.Normal(p) }

// BlendKind selects one of SmoothUnion's three blending functions.
type BlendKind int

const (
	BlendExp BlendKind = iota
	BlendPoly
	BlendPow
)

// SmoothUnion blends two SDFs instead of taking a hard min. For BlendPoly,
// K is the width of the transition region (smaller K is closer to a hard
// min); for BlendExp and BlendPow, K is a sharpness (larger K is closer
// to a hard min). It is not strictly 1-Lipschitz, so its
// epsilon is tightened by 10x (spec: "tracers must tolerate conservative
// under-steps there").
type SmoothUnion struct {
	A, B  SDF
	K     float64
	Blend BlendKind
}

func (s *SmoothUnion) Distance(p geom.Vec3) float64 {
	da := s.A.Distance(p)
	db := s.B.Distance(p)
	k := s.K
	switch s.Blend {
	case BlendExp:
		return -math.Log2(math.Exp2(-k*da)+math.Exp2(-k*db)) / k
	case BlendPow:
		dak := math.Pow(da, k)
		dbk := math.Pow(db, k)
		return math.Pow((dak*dbk)/(dak+dbk), 1.0/k)
	case BlendPoly:
		fallthrough
	default:
		h := math.Max(k-math.Abs(da-db), 0) / k
		return math.Min(da, db) - h*h*k/4.0
	}
}

func (s *SmoothUnion) Epsilon() float64 {
	return minEpsilon(s.A, s.B) / 10.0
}

// Material is undefined for SmoothUnion: spec §4.1 lists "none".
func (s *SmoothUnion) Material(geom.Vec3) (color.Material, bool) {
	return color.Material{}, false
}

// Normal falls back to the central-difference gradient since neither
// child's normal is individually meaningful across the blend region.
func (s *SmoothUnion) Normal(p geom.Vec3) geom.Vec3 { return DefaultNormal(s, p) }
