package geometry

import (
	"fmt"
	"math"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
	"github.com/jkvist/go-bsp-pathtracer/pkg/material"
)

// Vertex holds a position and a shading normal. Immutable after load.
type Vertex struct {
	Position core.Vec3
	Normal   core.Vec3
}

// Triangle references three vertices and a material. Immutable after load.
type Triangle struct {
	V   [3]int32 // Vertex indices
	Mat int32    // Material index
}

// Mesh is the flat geometry store: vertex, triangle and material arrays.
// All algorithmic consumers (BSP builder, intersector, integrator) read from
// it and never mutate it, which is what makes lock-free concurrent traversal
// safe.
type Mesh struct {
	Vertices  []Vertex
	Triangles []Triangle
	Materials []material.Material
}

// Validate checks the load-time invariants: every triangle's vertex indices
// are < len(Vertices) and its material index is < len(Materials).
func (m *Mesh) Validate() error {
	for i, tri := range m.Triangles {
		for _, v := range tri.V {
			if v < 0 || int(v) >= len(m.Vertices) {
				return fmt.Errorf("triangle %d: vertex index %d out of range [0,%d)", i, v, len(m.Vertices))
			}
		}
		if tri.Mat < 0 || int(tri.Mat) >= len(m.Materials) {
			return fmt.Errorf("triangle %d: material index %d out of range [0,%d)", i, tri.Mat, len(m.Materials))
		}
	}
	for i, mat := range m.Materials {
		if err := mat.Validate(); err != nil {
			return fmt.Errorf("material %d: %w", i, err)
		}
	}
	return nil
}

// Bounds returns the bounding box of all vertices
func (m *Mesh) Bounds() core.AABB {
	if len(m.Vertices) == 0 {
		return core.AABB{}
	}
	bounds := core.NewAABBFromPoints(m.Vertices[0].Position)
	for _, v := range m.Vertices[1:] {
		bounds = bounds.Union(core.NewAABBFromPoints(v.Position))
	}
	return bounds
}

// TriangleBounds returns the bounding box of one triangle
func (m *Mesh) TriangleBounds(tri int32) core.AABB {
	t := m.Triangles[tri]
	return core.NewAABBFromPoints(
		m.Vertices[t.V[0]].Position,
		m.Vertices[t.V[1]].Position,
		m.Vertices[t.V[2]].Position,
	)
}

// TriangleCentroid returns the centroid of one triangle
func (m *Mesh) TriangleCentroid(tri int32) core.Vec3 {
	t := m.Triangles[tri]
	return m.Vertices[t.V[0]].Position.
		Add(m.Vertices[t.V[1]].Position).
		Add(m.Vertices[t.V[2]].Position).
		Multiply(1.0 / 3.0)
}

// TriangleArea returns the surface area of one triangle
func (m *Mesh) TriangleArea(tri int32) float64 {
	t := m.Triangles[tri]
	e0 := m.Vertices[t.V[1]].Position.Subtract(m.Vertices[t.V[0]].Position)
	e1 := m.Vertices[t.V[2]].Position.Subtract(m.Vertices[t.V[0]].Position)
	return 0.5 * e0.Cross(e1).Length()
}

// FaceNormal returns the geometric normal of one triangle
func (m *Mesh) FaceNormal(tri int32) core.Vec3 {
	t := m.Triangles[tri]
	e0 := m.Vertices[t.V[1]].Position.Subtract(m.Vertices[t.V[0]].Position)
	e1 := m.Vertices[t.V[2]].Position.Subtract(m.Vertices[t.V[0]].Position)
	return e0.Cross(e1).Normalize()
}

// TrianglePoint returns the surface point at barycentric coordinates (u, v)
// relative to vertices 1 and 2 (weight of vertex 0 is 1-u-v).
func (m *Mesh) TrianglePoint(tri int32, u, v float64) core.Vec3 {
	t := m.Triangles[tri]
	p0 := m.Vertices[t.V[0]].Position
	p1 := m.Vertices[t.V[1]].Position
	p2 := m.Vertices[t.V[2]].Position
	return p0.Multiply(1 - u - v).Add(p1.Multiply(u)).Add(p2.Multiply(v))
}

// shadingNormal interpolates per-vertex normals at barycentric (u, v),
// falling back to the geometric normal for meshes without vertex normals.
func (m *Mesh) shadingNormal(tri int32, u, v float64) core.Vec3 {
	t := m.Triangles[tri]
	n0 := m.Vertices[t.V[0]].Normal
	n1 := m.Vertices[t.V[1]].Normal
	n2 := m.Vertices[t.V[2]].Normal

	n := n0.Multiply(1 - u - v).Add(n1.Multiply(u)).Add(n2.Multiply(v))
	if n.IsZero() {
		return m.FaceNormal(tri)
	}
	return n.Normalize()
}

// triangleEpsilon rejects near-parallel rays in the Möller-Trumbore test
const triangleEpsilon = 1e-8

// IntersectTriangle tests one triangle with the Möller-Trumbore algorithm.
// Returns the hit parameter and barycentric coordinates. A hit is accepted
// only strictly inside (ray.TMin, ray.TMax): ties on t go to the first
// writer, which keeps the nearest-hit rule deterministic.
func (m *Mesh) IntersectTriangle(ray core.Ray, tri int32) (t, u, v float64, ok bool) {
	trig := m.Triangles[tri]
	p0 := m.Vertices[trig.V[0]].Position

	// Edge basis
	e0 := m.Vertices[trig.V[1]].Position.Subtract(p0)
	e1 := m.Vertices[trig.V[2]].Position.Subtract(p0)

	h := ray.Direction.Cross(e1)
	det := e0.Dot(h)

	// Near-parallel rays are treated as a miss, never an error
	if det > -triangleEpsilon && det < triangleEpsilon {
		return 0, 0, 0, false
	}

	invDet := 1.0 / det
	s := ray.Origin.Subtract(p0)
	u = invDet * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, false
	}

	q := s.Cross(e0)
	v = invDet * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	t = invDet * e1.Dot(q)
	if t <= ray.TMin || t >= ray.TMax || math.IsNaN(t) {
		return 0, 0, 0, false
	}

	return t, u, v, true
}

// resolveHit builds the full hit record for a confirmed triangle intersection
func (m *Mesh) resolveHit(ray core.Ray, tri int32, t, u, v float64) Hit {
	hit := Hit{
		T:     t,
		Point: ray.At(t),
		Mat:   m.Materials[m.Triangles[tri].Mat],
	}
	hit.SetFaceNormal(ray, m.shadingNormal(tri, u, v))
	return hit
}

// IntersectLinear scans every triangle and returns the nearest hit, shrinking
// ray.TMax as hits are found. It is the reference implementation the BSP
// traversal is checked against.
func (m *Mesh) IntersectLinear(ray *core.Ray) (Hit, bool) {
	bestTri := int32(-1)
	var bestU, bestV float64

	for i := range m.Triangles {
		if t, u, v, ok := m.IntersectTriangle(*ray, int32(i)); ok {
			ray.TMax = t
			bestTri = int32(i)
			bestU, bestV = u, v
		}
	}

	if bestTri < 0 {
		return Hit{}, false
	}
	return m.resolveHit(*ray, bestTri, ray.TMax, bestU, bestV), true
}
