package geometry

import (
	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
	"github.com/jkvist/go-bsp-pathtracer/pkg/material"
)

// Hit contains information about a ray-surface intersection. The material
// record is copied in at intersection time, not referenced.
type Hit struct {
	T         float64           // Parameter t along the ray
	Point     core.Vec3         // Point of intersection
	Normal    core.Vec3         // Shading normal at the intersection
	FrontFace bool              // Whether the ray hit the front face
	Mat       material.Material // Resolved material of the hit surface
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *Hit) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// Surface is implemented by analytic primitives tested outside the BSP tree.
// Hit narrows ray.TMax on success so subsequent tests only accept nearer
// intersections.
type Surface interface {
	Hit(ray *core.Ray) (Hit, bool)
	BoundingBox() core.AABB
}
