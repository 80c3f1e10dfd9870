package scene

import (
	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
	"github.com/jkvist/go-bsp-pathtracer/pkg/geometry"
	"github.com/jkvist/go-bsp-pathtracer/pkg/material"
)

// NewCornellScene builds a Cornell-box variant: matte walls, a ceiling area
// light, a mirror sphere and a glass sphere.
func NewCornellScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	mb := NewMeshBuilder()

	white := mb.AddMaterial(material.NewLambert(core.NewVec3(0.73, 0.73, 0.73)))
	red := mb.AddMaterial(material.NewLambert(core.NewVec3(0.65, 0.05, 0.05)))
	green := mb.AddMaterial(material.NewLambert(core.NewVec3(0.12, 0.45, 0.15)))
	light := mb.AddMaterial(material.NewEmissive(core.NewVec3(15, 15, 15)))

	const boxSize = 555.0

	// Floor
	mb.AddQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white)
	// Ceiling
	mb.AddQuad(core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), white)
	// Back wall
	mb.AddQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white)
	// Left wall (red)
	mb.AddQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), red)
	// Right wall (green)
	mb.AddQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), green)
	// Ceiling light, slightly below the ceiling
	mb.AddQuad(
		core.NewVec3(213, boxSize-1, 227),
		core.NewVec3(130, 0, 0),
		core.NewVec3(0, 0, 105),
		light,
	)

	mirror := material.NewMirror()
	glass := material.NewDielectric(1.5, core.NewVec3(0.0012, 0.0008, 0.0))

	defaultCameraConfig := geometry.CameraConfig{
		Center:   core.NewVec3(278, 278, -800),
		LookAt:   core.NewVec3(278, 278, 0),
		Up:       core.NewVec3(0, 1, 0),
		Width:    512,
		Height:   512,
		CamConst: 1.4,
	}
	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = mergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	sc := &Scene{
		Mesh: mb.Build(),
		Surfaces: []geometry.Surface{
			geometry.NewSphere(core.NewVec3(185, 110, 350), 110, mirror),
			geometry.NewSphere(core.NewVec3(390, 90, 190), 90, glass),
		},
		CameraConfig:     cameraConfig,
		Render:           DefaultRenderConfig(),
		BackgroundTop:    core.Vec3{},
		BackgroundBottom: core.Vec3{},
	}
	sc.Render.Background = false
	return sc
}
