package geometry

import (
	"math"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
	"github.com/jkvist/go-bsp-pathtracer/pkg/material"
)

// Box is an analytic axis-aligned box primitive
type Box struct {
	Bounds core.AABB
	Mat    material.Material
}

// NewBox creates a new axis-aligned box from two corners
func NewBox(min, max core.Vec3, mat material.Material) *Box {
	return &Box{Bounds: core.NewAABB(min, max), Mat: mat}
}

// Hit runs the slab test and returns the entry (or, from inside, the exit)
// intersection, narrowing ray.TMax on success.
func (b *Box) Hit(ray *core.Ray) (Hit, bool) {
	tEnter := math.Inf(-1)
	tExit := math.Inf(1)
	enterAxis := -1

	for axis := 0; axis < 3; axis++ {
		lo := b.Bounds.Min.Component(axis)
		hi := b.Bounds.Max.Component(axis)
		origin := ray.Origin.Component(axis)
		direction := ray.Direction.Component(axis)

		if math.Abs(direction) < 1e-12 {
			if origin < lo || origin > hi {
				return Hit{}, false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (lo - origin) * invDirection
		t2 := (hi - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		if t1 > tEnter {
			tEnter = t1
			enterAxis = axis
		}
		tExit = math.Min(tExit, t2)
		if tEnter > tExit {
			return Hit{}, false
		}
	}

	t := tEnter
	if t <= ray.TMin {
		// Origin inside the box: use the exit face
		t = tExit
		if t <= ray.TMin {
			return Hit{}, false
		}
	}
	if t >= ray.TMax {
		return Hit{}, false
	}

	ray.TMax = t
	hit := Hit{
		T:     t,
		Point: ray.At(t),
		Mat:   b.Mat,
	}
	hit.SetFaceNormal(*ray, b.faceNormal(hit.Point, enterAxis))

	return hit, true
}

// faceNormal derives the outward normal of the face containing the point
func (b *Box) faceNormal(point core.Vec3, hintAxis int) core.Vec3 {
	center := b.Bounds.Center()
	half := b.Bounds.Size().Multiply(0.5)

	bestAxis := hintAxis
	bestRatio := -1.0
	for axis := 0; axis < 3; axis++ {
		extent := half.Component(axis)
		if extent <= 0 {
			continue
		}
		ratio := math.Abs(point.Component(axis)-center.Component(axis)) / extent
		if ratio > bestRatio {
			bestRatio = ratio
			bestAxis = axis
		}
	}

	normal := core.Vec3{}
	sign := 1.0
	if point.Component(bestAxis) < center.Component(bestAxis) {
		sign = -1.0
	}
	switch bestAxis {
	case 0:
		normal.X = sign
	case 1:
		normal.Y = sign
	default:
		normal.Z = sign
	}
	return normal
}

// BoundingBox returns the box bounds
func (b *Box) BoundingBox() core.AABB {
	return b.Bounds
}
