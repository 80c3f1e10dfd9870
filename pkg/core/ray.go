package core

import "math"

const (
	// RayEpsilon offsets secondary ray origins along the surface normal
	// to avoid self-intersection.
	RayEpsilon = 1e-4

	// AirIOR is the refractive index of the default surrounding medium.
	AirIOR = 1.0
)

// Ray represents a ray with an origin, direction and a valid parameter
// interval. TMin/TMax are narrowed during traversal and are the only
// per-traversal mutable state. Medium carries the refractive index of the
// medium the ray currently travels through, updated at dielectric boundaries.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
	Medium    float64
}

// NewRay creates a ray with an unbounded interval travelling through air.
// Intersection math assumes the direction is normalized.
func NewRay(origin, direction Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		TMin:      0,
		TMax:      math.Inf(1),
		Medium:    AirIOR,
	}
}

// NewBoundedRay creates a ray with an explicit valid interval.
func NewBoundedRay(origin, direction Vec3, tMin, tMax float64) Ray {
	r := NewRay(origin, direction)
	r.TMin = tMin
	r.TMax = tMax
	return r
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
