// Package scene assembles geometry, materials and render parameters and
// exposes the intersection and light-sampling queries the integrator needs.
package scene

import (
	"fmt"
	"math"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
	"github.com/jkvist/go-bsp-pathtracer/pkg/geometry"
)

// RenderConfig carries the numeric render parameters
type RenderConfig struct {
	Width           int     // Image width
	Height          int     // Image height
	MaxDepth        int     // Bounce cap per path
	SamplesPerFrame int     // Paths traced per pixel per frame
	Gamma           float64 // Display gamma applied at read-out
	Background      bool    // Add the background gradient on miss
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:           512,
		Height:          512,
		MaxDepth:        8,
		SamplesPerFrame: 1,
		Gamma:           2.2,
		Background:      true,
	}
}

// Scene contains everything needed for rendering: the flat mesh arrays, the
// analytic primitives of the early lab stages, the BSP tree and the
// precomputed light list. After Preprocess it is read-only, so pixel tasks
// traverse it concurrently without locks.
type Scene struct {
	Mesh     *geometry.Mesh
	Surfaces []geometry.Surface // Analytic spheres/planes/boxes, tested outside the BSP

	CameraConfig geometry.CameraConfig
	Render       RenderConfig

	BackgroundTop    core.Vec3
	BackgroundBottom core.Vec3

	BSP    *geometry.BSP
	Lights []int32 // Emissive triangle indices, precomputed once
	Bounds core.AABB
}

// Preprocess validates the mesh, builds the BSP tree, precomputes the light
// list and the world bounds. Must be called before rendering.
func (s *Scene) Preprocess() error {
	if s.Mesh == nil {
		s.Mesh = &geometry.Mesh{}
	}
	if err := s.Mesh.Validate(); err != nil {
		return fmt.Errorf("invalid mesh: %w", err)
	}

	s.BSP = geometry.NewBSP(s.Mesh)

	// A triangle is a light source iff its material emission is non-zero
	s.Lights = s.Lights[:0]
	for i, tri := range s.Mesh.Triangles {
		if s.Mesh.Materials[tri.Mat].IsEmissive() {
			s.Lights = append(s.Lights, int32(i))
		}
	}

	s.Bounds = s.BSP.Bounds
	for _, surface := range s.Surfaces {
		s.Bounds = s.Bounds.Union(surface.BoundingBox())
	}

	return nil
}

// TriangleCount returns the number of mesh triangles
func (s *Scene) TriangleCount() int {
	return len(s.Mesh.Triangles)
}

// Intersect returns the nearest hit along the ray. The mesh is traversed
// through the BSP tree; analytic primitives are tested directly under the
// same tmin/tmax contract. ray.TMax is narrowed to the nearest hit found.
func (s *Scene) Intersect(ray *core.Ray) (geometry.Hit, bool) {
	best, found := s.BSP.Intersect(ray)

	for _, surface := range s.Surfaces {
		if hit, ok := surface.Hit(ray); ok {
			best = hit
			found = true
		}
	}

	return best, found
}

// Occluded reports whether anything blocks the segment from origin along
// direction up to maxDistance.
func (s *Scene) Occluded(origin, direction core.Vec3, maxDistance float64) bool {
	shadowRay := core.NewBoundedRay(origin, direction, 0, maxDistance)
	_, blocked := s.Intersect(&shadowRay)
	return blocked
}

// LightSample is one point sampled on an emissive triangle
type LightSample struct {
	Point     core.Vec3
	Normal    core.Vec3 // Light-side geometric normal
	Direction core.Vec3 // Unit direction from the shading point to the light
	Distance  float64
	Emission  core.Vec3
	Weight    float64 // Unnormalized area x |lights| / (dist^2 / cos) factor
}

// SampleLight picks one emissive triangle uniformly and samples a point on
// it. Weight carries area x |lights| x cos(theta_light) / distance^2, the
// single-sample unbiased estimator factor for radiance arriving from the
// whole light set.
func (s *Scene) SampleLight(point core.Vec3, sampler core.Sampler) (LightSample, bool) {
	if len(s.Lights) == 0 {
		return LightSample{}, false
	}

	pick := int(sampler.Get1D() * float64(len(s.Lights)))
	if pick >= len(s.Lights) {
		pick = len(s.Lights) - 1
	}
	tri := s.Lights[pick]

	u, v := core.SampleTriangleBarycentric(sampler.Get2D())
	samplePoint := s.Mesh.TrianglePoint(tri, u, v)

	toLight := samplePoint.Subtract(point)
	distance := toLight.Length()
	if distance < 1e-8 {
		return LightSample{}, false
	}
	direction := toLight.Multiply(1.0 / distance)

	lightNormal := s.Mesh.FaceNormal(tri)
	cosLight := lightNormal.Dot(direction.Negate())
	if cosLight < 0 {
		// Two-sided emitters: flip to the side facing the shading point
		lightNormal = lightNormal.Negate()
		cosLight = -cosLight
	}

	area := s.Mesh.TriangleArea(tri)
	weight := area * float64(len(s.Lights)) * cosLight / (distance * distance)
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return LightSample{}, false
	}

	return LightSample{
		Point:     samplePoint,
		Normal:    lightNormal,
		Direction: direction,
		Distance:  distance,
		Emission:  s.Mesh.Materials[s.Mesh.Triangles[tri].Mat].Emission,
		Weight:    weight,
	}, true
}
