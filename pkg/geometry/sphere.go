package geometry

import (
	"math"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
	"github.com/jkvist/go-bsp-pathtracer/pkg/material"
)

// Sphere is an analytic sphere primitive
type Sphere struct {
	Center core.Vec3
	Radius float64
	Mat    material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Mat: mat}
}

// Hit solves the ray-sphere quadratic and narrows ray.TMax on success
func (s *Sphere) Hit(ray *core.Ray) (Hit, bool) {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return Hit{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Nearer root first
	root := (-halfB - sqrtD) / a
	if root <= ray.TMin || root >= ray.TMax {
		root = (-halfB + sqrtD) / a
		if root <= ray.TMin || root >= ray.TMax {
			return Hit{}, false
		}
	}

	ray.TMax = root

	hit := Hit{
		T:     root,
		Point: ray.At(root),
		Mat:   s.Mat,
	}
	outwardNormal := hit.Point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	hit.SetFaceNormal(*ray, outwardNormal)

	return hit, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
