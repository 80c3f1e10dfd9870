// Package integrator implements the stochastic path tracer: a bounce loop
// with next event estimation on diffuse surfaces, Russian roulette path
// termination and specular reflection/refraction chains.
package integrator

import (
	"math"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
	"github.com/jkvist/go-bsp-pathtracer/pkg/geometry"
	"github.com/jkvist/go-bsp-pathtracer/pkg/material"
	"github.com/jkvist/go-bsp-pathtracer/pkg/scene"
)

// Termination records why a path ended. Radiance estimates are valid for
// every termination reason; the reason is exposed for diagnostics.
type Termination int

const (
	TerminatedMaxBounce Termination = iota
	TerminatedMiss
	TerminatedRoulette
	TerminatedAbsorbed
)

// String returns the name of the termination reason
func (t Termination) String() string {
	switch t {
	case TerminatedMaxBounce:
		return "max-bounce"
	case TerminatedMiss:
		return "miss"
	case TerminatedRoulette:
		return "roulette"
	case TerminatedAbsorbed:
		return "absorbed"
	default:
		return "unknown"
	}
}

// PathTracer estimates per-pixel radiance by tracing stochastic paths
// through a preprocessed scene. It holds no mutable state and is safe for
// concurrent use across pixel workers.
type PathTracer struct {
	scene    *scene.Scene
	maxDepth int
}

// NewPathTracer creates a path tracer for the given preprocessed scene
func NewPathTracer(sc *scene.Scene) *PathTracer {
	maxDepth := sc.Render.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 1
	}
	return &PathTracer{scene: sc, maxDepth: maxDepth}
}

// Sample traces one path starting at the given camera ray and returns the
// radiance estimate.
func (pt *PathTracer) Sample(ray core.Ray, sampler core.Sampler) core.Vec3 {
	radiance, _ := pt.SamplePath(ray, sampler)
	return radiance
}

// SamplePath traces one path and additionally reports why it terminated.
//
// Diffuse vertices gather direct light through shadow rays, so emission
// found by the following bounce ray would be counted twice; emitVisible
// suppresses it. Specular chains keep emission visible since shadow rays
// cannot stand in for a mirrored or refracted light path.
func (pt *PathTracer) SamplePath(ray core.Ray, sampler core.Sampler) (core.Vec3, Termination) {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)
	emitVisible := true

	for bounce := 0; bounce < pt.maxDepth; bounce++ {
		hit, ok := pt.scene.Intersect(&ray)
		if !ok {
			if pt.scene.Render.Background {
				radiance = radiance.Add(throughput.MultiplyVec(pt.background(ray.Direction)))
			}
			return radiance, TerminatedMiss
		}

		mat := hit.Mat
		if emitVisible {
			radiance = radiance.Add(throughput.MultiplyVec(mat.Emission))
		}

		switch mat.Kind {
		case material.Lambert, material.Phong:
			direct := pt.directLight(ray, hit, sampler)
			radiance = radiance.Add(throughput.MultiplyVec(mat.Ambient.Add(direct)))

			survival := throughput.MultiplyVec(mat.Diffuse).Average()
			survival = math.Min(survival, 1)
			if survival <= 0 {
				return radiance, TerminatedAbsorbed
			}
			if sampler.Get1D() >= survival {
				return radiance, TerminatedRoulette
			}
			throughput = throughput.MultiplyVec(mat.Diffuse).Multiply(1 / survival)

			direction := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
			next := core.NewRay(hit.Point.Add(hit.Normal.Multiply(core.RayEpsilon)), direction)
			next.Medium = ray.Medium
			ray = next
			emitVisible = false

		case material.Mirror:
			reflected := material.Reflect(ray.Direction.Normalize(), hit.Normal)
			next := core.NewRay(hit.Point.Add(hit.Normal.Multiply(core.RayEpsilon)), reflected)
			next.Medium = ray.Medium
			ray = next
			emitVisible = true

		case material.Dielectric:
			next, terminated, reason := pt.scatterDielectric(ray, hit, mat, sampler, &throughput)
			if terminated {
				return radiance, reason
			}
			ray = next
			emitVisible = true
		}
	}

	return radiance, TerminatedMaxBounce
}

// directLight estimates the direct radiance at a diffuse hit by sampling one
// point on the scene's light set and casting a shadow ray towards it.
func (pt *PathTracer) directLight(ray core.Ray, hit geometry.Hit, sampler core.Sampler) core.Vec3 {
	sample, ok := pt.scene.SampleLight(hit.Point, sampler)
	if !ok {
		return core.Vec3{}
	}

	cosSurface := hit.Normal.Dot(sample.Direction)
	if cosSurface <= 0 {
		return core.Vec3{}
	}

	origin := hit.Point.Add(hit.Normal.Multiply(core.RayEpsilon))
	if pt.scene.Occluded(origin, sample.Direction, sample.Distance-2*core.RayEpsilon) {
		return core.Vec3{}
	}

	incident := sample.Emission.Multiply(sample.Weight)
	direct := hit.Mat.Diffuse.Multiply(1 / math.Pi).MultiplyVec(incident).Multiply(cosSurface)

	if hit.Mat.Kind == material.Phong && hit.Mat.Shininess > 0 {
		view := ray.Direction.Normalize().Negate()
		reflected := material.Reflect(sample.Direction.Negate(), hit.Normal)
		lobe := math.Pow(math.Max(0, reflected.Dot(view)), hit.Mat.Shininess)
		direct = direct.Add(hit.Mat.Specular.MultiplyVec(incident).Multiply(lobe))
	}

	return direct
}

// scatterDielectric handles a smooth dielectric boundary: Bouguer absorption
// over an interior segment, a stochastic Fresnel choice between reflection
// and refraction, and total internal reflection. Returns the continuation
// ray, or terminated=true when the path is absorbed.
func (pt *PathTracer) scatterDielectric(ray core.Ray, hit geometry.Hit, mat material.Material, sampler core.Sampler, throughput *core.Vec3) (core.Ray, bool, Termination) {
	// Leaving the medium means the segment just traced ran inside it
	if !hit.FrontFace {
		attenuation := material.BouguerAttenuation(mat.Extinction, hit.T)
		survival := math.Min(attenuation.Average(), 1)
		if survival <= 0 {
			return core.Ray{}, true, TerminatedAbsorbed
		}
		if survival < 1 {
			if sampler.Get1D() >= survival {
				return core.Ray{}, true, TerminatedAbsorbed
			}
			*throughput = throughput.MultiplyVec(attenuation).Multiply(1 / survival)
		}
	}

	var ratio, nextMedium float64
	if hit.FrontFace {
		ratio = ray.Medium / mat.IOR
		nextMedium = mat.IOR
	} else {
		ratio = ray.Medium / core.AirIOR
		nextMedium = core.AirIOR
	}

	unit := ray.Direction.Normalize()
	cosTheta := math.Min(-unit.Dot(hit.Normal), 1)

	refracted, canRefract := material.Refract(unit, hit.Normal, ratio)
	if !canRefract || material.Reflectance(cosTheta, ratio) > sampler.Get1D() {
		reflected := material.Reflect(unit, hit.Normal)
		next := core.NewRay(hit.Point.Add(hit.Normal.Multiply(core.RayEpsilon)), reflected)
		next.Medium = ray.Medium
		return next, false, TerminatedMaxBounce
	}

	next := core.NewRay(hit.Point.Subtract(hit.Normal.Multiply(core.RayEpsilon)), refracted)
	next.Medium = nextMedium
	return next, false, TerminatedMaxBounce
}

// background returns the vertical sky gradient for a miss direction
func (pt *PathTracer) background(direction core.Vec3) core.Vec3 {
	t := 0.5 * (direction.Normalize().Y + 1.0)
	return pt.scene.BackgroundBottom.Multiply(1 - t).Add(pt.scene.BackgroundTop.Multiply(t))
}
