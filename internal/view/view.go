// Package view implements the camera models that turn a pixel's
// normalized (u,v) coordinate into a primary world-space ray.
package view

import (
	"math"

	"github.com/kjalden/sdftrace/internal/geom"
)

// Transform maps a local (u,v,0) point with u,v in [-1,1] to a
// world-space primary ray.
type Transform interface {
	Project(local geom.Vec3) geom.Ray
}

// Ortho is an orthographic camera: every primary ray is parallel,
// pointing along the frame's +z axis.
type Ortho struct {
	Frame geom.Frame
}

func (o Ortho) Project(local geom.Vec3) geom.Ray {
	return geom.Ray{
		Origin:    o.Frame.ProjectPoint(local),
		Direction: o.Frame.ProjectVec(geom.Forward()),
	}
}

// Perspective is a pinhole camera: primary rays fan out from eyeFrame's
// origin through a near-plane frame sized by the field of view.
type Perspective struct {
	EyeFrame   geom.Frame
	Near       float64
	FovDegrees float64
}

func (p Perspective) Project(local geom.Vec3) geom.Ray {
	fov := p.FovDegrees * math.Pi / 180.0
	halfExtent := math.Tan(fov/2.0) * p.Near

	nearPlane := geom.Frame{
		Origin: p.EyeFrame.ProjectPoint(geom.Vec3{Z: p.Near}),
		I:      p.EyeFrame.ProjectVec(geom.Vec3{X: halfExtent}),
		J:      p.EyeFrame.ProjectVec(geom.Vec3{Y: halfExtent}),
		K:      p.EyeFrame.ProjectVec(geom.Forward()),
	}

	pointOnNearPlane := nearPlane.ProjectPoint(local)
	eye := p.EyeFrame.Origin
	return geom.Ray{
		Origin:    eye,
		Direction: pointOnNearPlane.Sub(eye).Normalize(),
	}
}

// PixelToLocal maps a pixel coordinate (x,y) in a WxH image to the
// normalized (u,v,0) coordinate Transform.Project expects, flipping y
// so that increasing image row maps to decreasing world-space up.
func PixelToLocal(x, y, width, height int) geom.Vec3 {
	halfW := float64(width) / 2.0
	halfH := float64(height) / 2.0
	u := (float64(x) - halfW) / halfW
	v := (halfH - float64(y)) / halfH
	return geom.Vec3{X: u, Y: v, Z: 0}
}
