// Package cubesphere maps chunk addresses living on one of six cube faces
// onto points on the unit sphere, continuously across shared edges and
// corners. Every sampler in internal/sampler consumes its output, never a
// face-local (u, v) pair directly, so seam continuity is this package's
// responsibility alone.
package cubesphere

import "github.com/cubesphere-engine/terra/internal/detgen"

// Face tags one of the six cube faces.
type Face uint8

const (
	PosX Face = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// Vec3 is a plain 3-component vector. There is no rendering code here to
// anchor a GL-flavored vector-math import, so sampler code and this
// package share this minimal value type instead.
type Vec3 struct {
	X, Y, Z float64
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v scaled by s, useful for turning a unit-sphere direction
// into a world-space position at a given radius.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Length returns the Euclidean norm of v.
func (v Vec3) Length() float64 {
	return detgen.DetSqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// FaceCoordToSphere maps a face coordinate (face, u, v), with u, v in
// [0, 1], to a point on the unit sphere. It uses the warped-cube ("equal
// area") remap: the raw cube-face vector's components are first biased
// toward the face center via a tangent-style correction before
// normalizing, so that equal steps in (u, v) cover closer-to-equal area
// on the sphere than a naive linear-then-normalize mapping would. The
// mapping is continuous across edges and corners because it is built
// entirely from the shared cube geometry: two face coordinates that sit
// on a common edge (or the three that meet at a common corner) project
// to the same raw cube point before warping, hence the same sphere point
// after it.
func FaceCoordToSphere(face Face, u, v float64) Vec3 {
	// Map [0,1] -> [-1,1].
	a := 2*u - 1
	b := 2*v - 1

	// Warp toward equal area: a point near a face edge is pulled slightly
	// toward the center, countering the area distortion a flat cube
	// projection introduces near its corners.
	wa := warp(a)
	wb := warp(b)

	var x, y, z float64
	switch face {
	case PosX:
		x, y, z = 1, wb, -wa
	case NegX:
		x, y, z = -1, wb, wa
	case PosY:
		x, y, z = wa, 1, -wb
	case NegY:
		x, y, z = wa, -1, wb
	case PosZ:
		x, y, z = wa, wb, 1
	case NegZ:
		x, y, z = -wa, wb, -1
	}

	n := detgen.DetSqrt(x*x + y*y + z*z)
	return Vec3{x / n, y / n, z / n}
}

// warp is the standard tangent-based equal-area correction: tan(t * pi/4)
// pulls values near +-1 outward less than a linear map would, which after
// normalization results in more uniform sphere-surface area per (u, v)
// cell.
func warp(t float64) float64 {
	const quarterPi = 0.7853981633974483
	return tanApprox(t * quarterPi)
}

// tanApprox computes tan via det_sin/det_cos so the whole mapping routes
// through the portable transcendental primitives in internal/detgen.
func tanApprox(t float64) float64 {
	c := detgen.DetCos(t)
	if c == 0 {
		c = 1e-12
	}
	return detgen.DetSin(t) / c
}
