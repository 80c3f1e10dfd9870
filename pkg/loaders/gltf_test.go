package loaders

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"testing"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
)

// writeTriangleGLTF builds a one-triangle glTF file with an embedded buffer:
// three positions followed by three uint16 indices.
func writeTriangleGLTF(t *testing.T, dir string) string {
	t.Helper()

	var buf bytes.Buffer
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	for _, p := range positions {
		for _, c := range p {
			binary.Write(&buf, binary.LittleEndian, c)
		}
	}
	for _, idx := range []uint16{0, 1, 2} {
		binary.Write(&buf, binary.LittleEndian, idx)
	}

	uri := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	doc := fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "buffers": [{"uri": %q, "byteLength": %d}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 6}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
    {"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ],
  "materials": [{
    "pbrMetallicRoughness": {"baseColorFactor": [0.8, 0.1, 0.2, 1.0]},
    "emissiveFactor": [1.0, 2.0, 3.0]
  }],
  "meshes": [{
    "primitives": [{
      "attributes": {"POSITION": 0},
      "indices": 1,
      "material": 0,
      "mode": 4
    }]
  }]
}`, uri, buf.Len())

	return writeFile(t, dir, "triangle.gltf", doc)
}

func TestLoadGLTF(t *testing.T) {
	path := writeTriangleGLTF(t, t.TempDir())

	mesh, err := LoadGLTF(path)
	if err != nil {
		t.Fatalf("LoadGLTF failed: %v", err)
	}

	if len(mesh.Vertices) != 3 {
		t.Fatalf("Expected 3 vertices, got %d", len(mesh.Vertices))
	}
	if len(mesh.Triangles) != 1 {
		t.Fatalf("Expected 1 triangle, got %d", len(mesh.Triangles))
	}

	expected := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	}
	for i, want := range expected {
		if got := mesh.Vertices[i].Position; got.Subtract(want).Length() > 1e-6 {
			t.Errorf("Vertex %d: expected %v, got %v", i, want, got)
		}
	}

	mat := mesh.Materials[mesh.Triangles[0].Mat]
	if mat.Diffuse.Subtract(core.NewVec3(0.8, 0.1, 0.2)).Length() > 1e-6 {
		t.Errorf("Expected base color mapped to diffuse, got %v", mat.Diffuse)
	}
	if mat.Emission.Subtract(core.NewVec3(1, 2, 3)).Length() > 1e-6 {
		t.Errorf("Expected emissive factor mapped to emission, got %v", mat.Emission)
	}
	if !mat.IsEmissive() {
		t.Error("Expected the emissive material to register as a light")
	}

	if area := mesh.TriangleArea(0); math.Abs(area-0.5) > 1e-6 {
		t.Errorf("Expected triangle area 0.5, got %v", area)
	}
}

func TestLoadGLTF_MissingFile(t *testing.T) {
	if _, err := LoadGLTF("does-not-exist.gltf"); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
