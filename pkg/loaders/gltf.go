package loaders

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
	"github.com/jkvist/go-bsp-pathtracer/pkg/geometry"
	"github.com/jkvist/go-bsp-pathtracer/pkg/material"
)

// LoadGLTF reads a glTF or binary glTF (.glb) file and returns the flat mesh
// arrays. The PBR base color factor maps to diffuse reflectance and the
// emissive factor to emission, so emissive glTF surfaces become light
// sources.
func LoadGLTF(path string) (*geometry.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf %s: %w", path, err)
	}

	mesh := &geometry.Mesh{}
	for _, m := range doc.Meshes {
		if err := appendGLTFMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
		}
	}

	logger.Infof("loaded gltf: %d vertices, %d triangles, %d materials",
		len(mesh.Vertices), len(mesh.Triangles), len(mesh.Materials))

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}

func appendGLTFMesh(doc *gltf.Document, m *gltf.Mesh, mesh *geometry.Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []core.Vec3
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3Accessor(doc, normIdx)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		matIndex := int32(len(mesh.Materials))
		mesh.Materials = append(mesh.Materials, convertGLTFMaterial(doc, prim.Material))

		baseVertex := int32(len(mesh.Vertices))
		for i, pos := range positions {
			vertex := geometry.Vertex{Position: pos}
			if i < len(normals) {
				vertex.Normal = normals[i].Normalize()
			}
			mesh.Vertices = append(mesh.Vertices, vertex)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Triangles = append(mesh.Triangles, geometry.Triangle{
				V: [3]int32{
					baseVertex + int32(indices[i]),
					baseVertex + int32(indices[i+1]),
					baseVertex + int32(indices[i+2]),
				},
				Mat: matIndex,
			})
		}
	}
	return nil
}

// convertGLTFMaterial maps a glTF PBR material onto a renderer material.
// Primitives without a material fall back to plain white Lambertian.
func convertGLTFMaterial(doc *gltf.Document, index *int) material.Material {
	if index == nil || *index >= len(doc.Materials) {
		return material.NewLambert(core.NewVec3(0.8, 0.8, 0.8))
	}
	src := doc.Materials[*index]

	diffuse := core.NewVec3(0.8, 0.8, 0.8)
	if src.PBRMetallicRoughness != nil {
		base := src.PBRMetallicRoughness.BaseColorFactorOrDefault()
		diffuse = core.NewVec3(float64(base[0]), float64(base[1]), float64(base[2]))
	}

	mat := material.NewLambert(diffuse)
	mat.Emission = core.NewVec3(
		float64(src.EmissiveFactor[0]),
		float64(src.EmissiveFactor[1]),
		float64(src.EmissiveFactor[2]),
	)
	return mat
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]core.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]core.Vec3, accessor.Count)
	for i := range result {
		offset := i * stride
		result[i] = core.NewVec3(
			float64(readFloat32(data[offset:])),
			float64(readFloat32(data[offset+4:])),
			float64(readFloat32(data[offset+8:])),
		)
	}
	return result, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", accessor.Type)
	}

	componentSize := 0
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		componentSize = 1
	case gltf.ComponentUshort:
		componentSize = 2
	case gltf.ComponentUint:
		componentSize = 4
	default:
		return nil, fmt.Errorf("unsupported index component type %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, componentSize)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		offset := i * stride
		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			result[i] = int(data[offset])
		case gltf.ComponentUshort:
			result[i] = int(binary.LittleEndian.Uint16(data[offset:]))
		case gltf.ComponentUint:
			result[i] = int(binary.LittleEndian.Uint32(data[offset:]))
		}
	}
	return result, nil
}

// accessorBytes locates the raw buffer bytes behind an accessor. Only
// embedded buffers are supported, which covers .glb and data-URI files.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, defaultStride int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("external buffers are not supported")
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = defaultStride
	}

	start := view.ByteOffset + accessor.ByteOffset
	end := start + (accessor.Count-1)*stride + defaultStride
	if end > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor range [%d,%d) exceeds buffer of %d bytes", start, end, len(buffer.Data))
	}
	return buffer.Data[start:end], stride, nil
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
