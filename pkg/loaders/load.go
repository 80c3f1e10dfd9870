package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jkvist/go-bsp-pathtracer/pkg/geometry"
)

// Load dispatches on the file extension to the matching format loader
func Load(path string) (*geometry.Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported scene file format %q", ext)
	}
}
