package scene

import (
	"math"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
	"github.com/jkvist/go-bsp-pathtracer/pkg/geometry"
	"github.com/jkvist/go-bsp-pathtracer/pkg/material"
)

// NewDefaultScene builds the classic lab scene: a diffuse ground plane, a
// matte triangle and a glass sphere, lit by a small area light of intensity
// pi overhead.
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	mb := NewMeshBuilder()

	matte := mb.AddMaterial(material.Material{
		Kind:    material.Lambert,
		Ambient: core.NewVec3(0.01, 0.07, 0.0), // 0.1 x diffuse
		Diffuse: core.NewVec3(0.1, 0.7, 0.0),
		IOR:     core.AirIOR,
	})
	light := mb.AddMaterial(material.NewEmissive(core.NewVec3(math.Pi, math.Pi, math.Pi)))

	// The matte triangle of the early lab stages
	mb.AddTriangle(
		core.NewVec3(-0.2, 0.1, 0.9),
		core.NewVec3(0.2, 0.1, 0.9),
		core.NewVec3(-0.2, 0.1, -0.1),
		matte,
	)

	// Small square area light overhead
	mb.AddQuad(
		core.NewVec3(-0.2, 2.0, -0.2),
		core.NewVec3(0.4, 0, 0),
		core.NewVec3(0, 0, 0.4),
		light,
	)

	groundMat := material.Material{
		Kind:    material.Lambert,
		Ambient: core.NewVec3(0.01, 0.07, 0.0),
		Diffuse: core.NewVec3(0.1, 0.7, 0.0),
		IOR:     core.AirIOR,
	}
	glass := material.NewDielectric(1.5, core.NewVec3(0.1, 0.02, 0.1))

	defaultCameraConfig := geometry.CameraConfig{
		Center:   core.NewVec3(0.15, 1.5, 10.0),
		LookAt:   core.NewVec3(0.15, 1.5, 0.0),
		Up:       core.NewVec3(0, 1, 0),
		Width:    512,
		Height:   512,
		CamConst: 2.5,
	}
	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = mergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	return &Scene{
		Mesh: mb.Build(),
		Surfaces: []geometry.Surface{
			geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), groundMat),
			geometry.NewSphere(core.NewVec3(0.42, 0.42, 0.36), 0.3, glass),
		},
		CameraConfig:     cameraConfig,
		Render:           DefaultRenderConfig(),
		BackgroundTop:    core.NewVec3(0.1, 0.3, 0.6),
		BackgroundBottom: core.NewVec3(0.75, 0.87, 0.93),
	}
}

// mergeCameraConfig overlays the non-zero fields of override onto base
func mergeCameraConfig(base, override geometry.CameraConfig) geometry.CameraConfig {
	merged := base
	if !override.Center.IsZero() {
		merged.Center = override.Center
	}
	if !override.LookAt.IsZero() {
		merged.LookAt = override.LookAt
	}
	if !override.Up.IsZero() {
		merged.Up = override.Up
	}
	if override.Width != 0 {
		merged.Width = override.Width
	}
	if override.Height != 0 {
		merged.Height = override.Height
	}
	if override.CamConst != 0 {
		merged.CamConst = override.CamConst
	}
	if override.Aperture != 0 {
		merged.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		merged.FocusDistance = override.FocusDistance
	}
	return merged
}
