// Package shade implements the lighting pipeline: direct lighting with
// shadows, recursive reflection, and two-interface refraction through
// translucent media.
package shade

import (
	"fmt"
	"math"

	"github.com/kjalden/sdftrace/internal/color"
	"github.com/kjalden/sdftrace/internal/geom"
	"github.com/kjalden/sdftrace/internal/scene"
	"github.com/kjalden/sdftrace/internal/sdf"
	"github.com/kjalden/sdftrace/internal/trace"
)

// PrimaryReflBudget is the recursion budget assigned to every
// primary-ray Raycast call.
const PrimaryReflBudget = 10

// Raycast jitters ray, traces it against the scene, and shades the hit
// if any. It returns ok=false on a miss. It panics if ray contains a
// NaN component — that is always a programmer error upstream, never a
// legitimate miss.
func Raycast(sc *scene.Scene, ray geom.Ray, reflBudget int, rng Entropy) (color.Color, bool) {
	if !ray.Valid() {
		panic(fmt.Sprintf("shade.Raycast: NaN ray %v", ray))
	}
	jittered := jitter(ray, jitterDegrees, rng)
	hit, ok := trace.Raymarch(jittered, sc.SDF, sc.FarPlane)
	if !ok {
		return color.Color{}, false
	}
	return shadeHit(sc, hit, reflBudget, rng), true
}

func shadeHit(sc *scene.Scene, hit trace.Hit, budget int, rng Entropy) color.Color {
	mat := hit.Material
	result := mat.Ambient.Scale(mat.Opacity)

	v := hit.Ray.Direction.Normalize().Neg()
	epsilon := sc.SDF.Epsilon()
	hitPlus := hit.Point.Add(hit.Normal.Scale(epsilon))

	for _, light := range sc.Lights {
		lc := light.ColorAt(hit.Point)
		ld := light.ShadowRay(hitPlus).Direction.Normalize()
		filter := translucentShadowWalk(sc, hitPlus, light, budget)
		if filter.IsBlack() {
			continue
		}

		lcFiltered := filter.Mul(lc)
		lr := ld.Sub(ld.OffAxis(hit.Normal).Scale(2))
		diff := math.Max(0, ld.Dot(hit.Normal))
		spec := math.Pow(math.Max(0, lr.Dot(v)), mat.Phong)

		result = result.Add(diff*mat.Opacity, mat.Diffuse.Mul(lcFiltered))
		result = result.Add(spec, mat.Specular)
	}

	if mat.Reflectivity > 0 && budget > 0 {
		reflectDir := v.Sub(v.OffAxis(hit.Normal).Scale(2))
		if reflColor, ok := Raycast(sc, geom.Ray{Origin: hitPlus, Direction: reflectDir}, budget-1, rng); ok {
			result = result.Add(mat.Reflectivity*mat.Opacity, reflColor)
		}
	}

	if mat.Opacity < 1 && budget > 0 {
		if refrColor, ok := traceRefraction(sc, hit, epsilon, budget, rng); ok {
			result = result.Add(1-mat.Opacity, refrColor)
		}
	}

	return result
}

// translucentShadowWalk probes from origin toward light, threading
// through any translucent occluders in the way, and returns the
// accumulated color filter (white if the light is fully visible, black
// if fully blocked). Direction to the light for diffuse/specular
// purposes is computed once by the caller from the original surface
// point; this walk does not account for refractive bending of the
// shadow ray as it passes through a translucent solid (an open question
// the spec leaves unresolved, see DESIGN.md).
func translucentShadowWalk(sc *scene.Scene, origin geom.Vec3, light scene.Light, budget int) color.Color {
	filter := color.White()
	sr := light.ShadowRay(origin)

	for i := 0; i < budget; i++ {
		ld := sr.Direction.Normalize()
		lightDist := sr.Direction.Length()

		occluder, hitSomething := trace.Raymarch(sr, sc.SDF, lightDist)
		if !hitSomething {
			return filter
		}

		frontFace := occluder.Normal.Dot(ld) < 0
		if frontFace {
			if occluder.Material.Opacity >= 1 {
				return color.Black()
			}
			filter = filter.Lerp(occluder.Material.Opacity, occluder.Material.Diffuse)

			entry := occluder.Point.AddScaled(2*sc.SDF.Epsilon(), ld)
			backRay := geom.Ray{Origin: entry, Direction: ld}
			backHit, hitBack := trace.Raymarch(backRay, sdf.NegatedRef{SDF: sc.SDF}, sc.FarPlane)
			if !hitBack {
				return filter
			}
			exit := backHit.Point.AddScaled(2*sc.SDF.Epsilon(), ld)
			sr = light.ShadowRay(exit)
			continue
		}

		// Back face reached without a front hit: degenerate, push past
		// it and keep walking toward the light.
		exit := occluder.Point.AddScaled(2*sc.SDF.Epsilon(), ld)
		sr = light.ShadowRay(exit)
	}
	return filter
}

// traceRefraction carries a ray through the two interfaces of a
// translucent solid: in through hit's surface, across the interior to
// the far side (found by tracing the negated scene), and out through
// the far side's surface.
func traceRefraction(sc *scene.Scene, hit trace.Hit, epsilon float64, budget int, rng Entropy) (color.Color, bool) {
	mat := hit.Material
	entryOrigin := hit.Point.AddScaled(-2*epsilon, hit.Normal)
	entryDir := refract(hit.Ray.Direction, hit.Normal, 1.0, mat.IndexOfRefraction)
	entryRay := geom.Ray{Origin: entryOrigin, Direction: entryDir}

	farSide, ok := trace.Raymarch(entryRay, sdf.NegatedRef{SDF: sc.SDF}, sc.FarPlane)
	if !ok {
		return color.Color{}, false
	}

	exitOrigin := farSide.Point.AddScaled(-2*epsilon, farSide.Normal)
	exitDir := refract(farSide.Ray.Direction, farSide.Normal, mat.IndexOfRefraction, 1.0)
	exitRay := geom.Ray{Origin: exitOrigin, Direction: exitDir}

	return Raycast(sc, exitRay, budget-1, rng)
}
