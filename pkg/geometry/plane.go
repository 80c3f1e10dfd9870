package geometry

import (
	"math"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
	"github.com/jkvist/go-bsp-pathtracer/pkg/material"
)

// Plane is an infinite analytic plane defined by a point and a normal
type Plane struct {
	Point  core.Vec3
	Normal core.Vec3 // Normalized on construction
	Mat    material.Material
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, mat material.Material) *Plane {
	return &Plane{Point: point, Normal: normal.Normalize(), Mat: mat}
}

// Hit solves the linear ray-plane equation and narrows ray.TMax on success
func (p *Plane) Hit(ray *core.Ray) (Hit, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Near-parallel rays miss
	if math.Abs(denominator) < 1e-8 {
		return Hit{}, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t <= ray.TMin || t >= ray.TMax {
		return Hit{}, false
	}

	ray.TMax = t

	hit := Hit{
		T:     t,
		Point: ray.At(t),
		Mat:   p.Mat,
	}
	hit.SetFaceNormal(*ray, p.Normal)

	return hit, true
}

// BoundingBox returns a large box; infinite planes cannot be bounded tightly
func (p *Plane) BoundingBox() core.AABB {
	const largeValue = 1e6
	return core.NewAABB(
		core.NewVec3(-largeValue, -largeValue, -largeValue),
		core.NewVec3(largeValue, largeValue, largeValue),
	)
}
