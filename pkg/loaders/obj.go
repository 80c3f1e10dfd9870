// Package loaders builds scene meshes from Wavefront OBJ and glTF files.
package loaders

import (
	"fmt"
	"path/filepath"

	"github.com/udhos/gwob"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
	"github.com/jkvist/go-bsp-pathtracer/pkg/geometry"
	"github.com/jkvist/go-bsp-pathtracer/pkg/log"
	"github.com/jkvist/go-bsp-pathtracer/pkg/material"
)

var logger = log.New("loaders")

// LoadOBJ reads a Wavefront OBJ file, resolving its material library when
// one is referenced, and returns the flat mesh arrays. Ka maps to the
// ambient term, Kd to diffuse reflectance, and a non-zero Ks with a positive
// Ns selects the glossy Phong material.
func LoadOBJ(path string) (*geometry.Mesh, error) {
	options := gwob.ObjParserOptions{
		LogStats:      false,
		Logger:        func(s string) { logger.Debug(s) },
		IgnoreNormals: false,
	}

	obj, err := gwob.NewObjFromFile(path, &options)
	if err != nil {
		return nil, fmt.Errorf("parse obj %s: %w", path, err)
	}

	matlib := gwob.NewMaterialLib()
	if len(obj.Mtllib) > 0 {
		matlib, err = gwob.ReadMaterialLibFromFile(filepath.Join(filepath.Dir(path), obj.Mtllib), &options)
		if err != nil {
			matlib, err = gwob.ReadMaterialLibFromFile(obj.Mtllib, &options)
			if err != nil {
				return nil, fmt.Errorf("read material lib %s: %w", obj.Mtllib, err)
			}
		}
	}

	return buildMesh(obj, matlib)
}

// buildMesh converts the parsed OBJ into index-based vertex/triangle arrays,
// deduplicating vertices and materials across groups.
func buildMesh(obj *gwob.Obj, matlib gwob.MaterialLib) (*geometry.Mesh, error) {
	stride := obj.StrideSize / 4
	posOffset := obj.StrideOffsetPosition / 4
	normOffset := obj.StrideOffsetNormal / 4

	mesh := &geometry.Mesh{
		Vertices: make([]geometry.Vertex, 0, len(obj.Coord)/stride),
	}

	vertexMap := make(map[geometry.Vertex]int32)
	materialMap := make(map[string]int32)

	for _, group := range obj.Groups {
		matIndex, exists := materialMap[group.Usemtl]
		if !exists {
			matIndex = int32(len(mesh.Materials))
			mesh.Materials = append(mesh.Materials, convertMaterial(matlib, group.Usemtl))
			materialMap[group.Usemtl] = matIndex
		}

		if group.IndexCount%3 != 0 {
			return nil, fmt.Errorf("group %q has %d indices, not a multiple of 3", group.Usemtl, group.IndexCount)
		}

		for f := 0; f < group.IndexCount/3; f++ {
			tri := geometry.Triangle{Mat: matIndex}
			for v := 0; v < 3; v++ {
				idx := obj.Indices[group.IndexBegin+3*f+v]

				vertex := geometry.Vertex{
					Position: core.NewVec3(
						obj.Coord64(stride*idx+posOffset),
						obj.Coord64(stride*idx+posOffset+1),
						obj.Coord64(stride*idx+posOffset+2),
					),
				}
				if obj.NormCoordFound {
					vertex.Normal = core.NewVec3(
						obj.Coord64(stride*idx+normOffset),
						obj.Coord64(stride*idx+normOffset+1),
						obj.Coord64(stride*idx+normOffset+2),
					).Normalize()
				}

				vi, seen := vertexMap[vertex]
				if !seen {
					vi = int32(len(mesh.Vertices))
					vertexMap[vertex] = vi
					mesh.Vertices = append(mesh.Vertices, vertex)
				}
				tri.V[v] = vi
			}
			mesh.Triangles = append(mesh.Triangles, tri)
		}
	}

	logger.Infof("loaded obj: %d vertices, %d triangles, %d materials",
		len(mesh.Vertices), len(mesh.Triangles), len(mesh.Materials))

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}

// convertMaterial maps an MTL record onto a renderer material. Groups
// without a library entry fall back to plain white Lambertian.
func convertMaterial(matlib gwob.MaterialLib, name string) material.Material {
	entry, exists := matlib.Lib[name]
	if !exists {
		return material.NewLambert(core.NewVec3(0.8, 0.8, 0.8))
	}

	ambient := core.NewVec3(float64(entry.Ka[0]), float64(entry.Ka[1]), float64(entry.Ka[2]))
	diffuse := core.NewVec3(float64(entry.Kd[0]), float64(entry.Kd[1]), float64(entry.Kd[2]))
	specular := core.NewVec3(float64(entry.Ks[0]), float64(entry.Ks[1]), float64(entry.Ks[2]))
	shininess := float64(entry.Ns)

	mat := material.NewLambert(diffuse)
	if !specular.IsZero() && shininess > 0 {
		mat = material.NewPhong(diffuse, specular, shininess)
	}
	mat.Ambient = ambient
	return mat
}
