package loaders

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
	"github.com/jkvist/go-bsp-pathtracer/pkg/material"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadOBJ(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "scene.mtl", `
newmtl red
Ka 0.1 0.0 0.0
Kd 0.8 0.1 0.1
Ks 0.0 0.0 0.0
Ns 0.0

newmtl shiny
Ka 0.0 0.0 0.0
Kd 0.2 0.2 0.6
Ks 0.5 0.5 0.5
Ns 32.0
`)

	objPath := writeFile(t, dir, "scene.obj", `
mtllib scene.mtl
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 0.0 1.0 0.0
v 0.0 0.0 1.0
vn 0.0 0.0 1.0
usemtl red
f 1//1 2//1 3//1
usemtl shiny
f 1//1 2//1 4//1
`)

	mesh, err := LoadOBJ(objPath)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}

	if len(mesh.Triangles) != 2 {
		t.Fatalf("Expected 2 triangles, got %d", len(mesh.Triangles))
	}
	if len(mesh.Materials) != 2 {
		t.Fatalf("Expected 2 materials, got %d", len(mesh.Materials))
	}

	// Shared vertices deduplicate across groups
	if len(mesh.Vertices) != 4 {
		t.Errorf("Expected 4 deduplicated vertices, got %d", len(mesh.Vertices))
	}

	red := mesh.Materials[mesh.Triangles[0].Mat]
	if red.Kind != material.Lambert {
		t.Errorf("Expected lambert for zero Ks, got %v", red.Kind)
	}
	if red.Diffuse.Subtract(core.NewVec3(0.8, 0.1, 0.1)).Length() > 1e-6 {
		t.Errorf("Expected Kd mapped to diffuse, got %v", red.Diffuse)
	}
	if red.Ambient.Subtract(core.NewVec3(0.1, 0, 0)).Length() > 1e-6 {
		t.Errorf("Expected Ka mapped to ambient, got %v", red.Ambient)
	}

	shiny := mesh.Materials[mesh.Triangles[1].Mat]
	if shiny.Kind != material.Phong {
		t.Errorf("Expected phong for non-zero Ks and Ns, got %v", shiny.Kind)
	}
	if math.Abs(shiny.Shininess-32) > 1e-6 {
		t.Errorf("Expected Ns mapped to shininess, got %v", shiny.Shininess)
	}

	// Vertex normals survive the round trip
	n := mesh.Vertices[mesh.Triangles[0].V[0]].Normal
	if n.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-6 {
		t.Errorf("Expected normal (0,0,1), got %v", n)
	}
}

func TestLoadOBJ_MissingFile(t *testing.T) {
	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestLoadOBJ_NoMaterialLib(t *testing.T) {
	dir := t.TempDir()
	objPath := writeFile(t, dir, "plain.obj", `
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 0.0 1.0 0.0
f 1 2 3
`)

	mesh, err := LoadOBJ(objPath)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if len(mesh.Triangles) != 1 {
		t.Fatalf("Expected 1 triangle, got %d", len(mesh.Triangles))
	}

	// Ungrouped faces fall back to the default material
	mat := mesh.Materials[mesh.Triangles[0].Mat]
	if mat.Kind != material.Lambert || mat.Diffuse.IsZero() {
		t.Errorf("Expected the default lambert fallback, got %+v", mat)
	}
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	if _, err := Load("scene.stl"); err == nil {
		t.Error("Expected unsupported format error")
	}
}
