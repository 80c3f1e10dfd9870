package scene

import (
	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
	"github.com/jkvist/go-bsp-pathtracer/pkg/geometry"
	"github.com/jkvist/go-bsp-pathtracer/pkg/material"
)

// MeshBuilder accumulates flat vertex/triangle/material arrays
type MeshBuilder struct {
	mesh geometry.Mesh
}

// NewMeshBuilder creates an empty builder
func NewMeshBuilder() *MeshBuilder {
	return &MeshBuilder{}
}

// AddMaterial appends a material and returns its index
func (mb *MeshBuilder) AddMaterial(mat material.Material) int32 {
	mb.mesh.Materials = append(mb.mesh.Materials, mat)
	return int32(len(mb.mesh.Materials)) - 1
}

// AddVertex appends a vertex and returns its index
func (mb *MeshBuilder) AddVertex(position, normal core.Vec3) int32 {
	mb.mesh.Vertices = append(mb.mesh.Vertices, geometry.Vertex{
		Position: position,
		Normal:   normal,
	})
	return int32(len(mb.mesh.Vertices)) - 1
}

// AddTriangle appends one triangle with per-vertex normals set to the
// geometric face normal.
func (mb *MeshBuilder) AddTriangle(v0, v1, v2 core.Vec3, mat int32) {
	normal := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	i0 := mb.AddVertex(v0, normal)
	i1 := mb.AddVertex(v1, normal)
	i2 := mb.AddVertex(v2, normal)
	mb.mesh.Triangles = append(mb.mesh.Triangles, geometry.Triangle{
		V:   [3]int32{i0, i1, i2},
		Mat: mat,
	})
}

// AddQuad appends the two triangles spanning corner, corner+u, corner+u+v,
// corner+v.
func (mb *MeshBuilder) AddQuad(corner, u, v core.Vec3, mat int32) {
	c0 := corner
	c1 := corner.Add(u)
	c2 := corner.Add(u).Add(v)
	c3 := corner.Add(v)
	mb.AddTriangle(c0, c1, c2, mat)
	mb.AddTriangle(c0, c2, c3, mat)
}

// Build returns the accumulated mesh
func (mb *MeshBuilder) Build() *geometry.Mesh {
	mesh := mb.mesh
	return &mesh
}
