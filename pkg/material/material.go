// Package material defines the flat material records attached to scene
// primitives and the pure BSDF helper math used by the integrator.
package material

import (
	"fmt"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
)

// Kind selects the BSDF used when shading a surface
type Kind int32

const (
	Lambert Kind = iota
	Phong
	Mirror
	Dielectric
)

// String returns the name of the BSDF kind
func (k Kind) String() string {
	switch k {
	case Lambert:
		return "lambert"
	case Phong:
		return "phong"
	case Mirror:
		return "mirror"
	case Dielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("kind(%d)", int32(k))
	}
}

// Material is a flat record of surface properties. It is immutable after
// scene load; intersection copies the resolved record into the hit rather
// than referencing it.
//
// Emission alone decides whether a triangle is a light source; Ambient is a
// view-independent radiance term added by the diffuse BSDFs and never
// sampled.
type Material struct {
	Kind       Kind
	Emission   core.Vec3 // Emitted radiance, zero for non-emitters
	Ambient    core.Vec3 // Ambient radiance of the diffuse shading term
	Diffuse    core.Vec3 // Diffuse reflectance in [0,1]
	Specular   core.Vec3 // Specular reflectance
	Shininess  float64   // Phong exponent, >= 0
	IOR        float64   // Index of refraction, > 0 (1.0 for opaque)
	Extinction core.Vec3 // Absorption per unit length, dielectrics only
}

// NewLambert creates a diffuse material
func NewLambert(diffuse core.Vec3) Material {
	return Material{Kind: Lambert, Diffuse: diffuse, IOR: core.AirIOR}
}

// NewPhong creates a diffuse material with a glossy specular lobe
func NewPhong(diffuse, specular core.Vec3, shininess float64) Material {
	return Material{
		Kind:      Phong,
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: shininess,
		IOR:       core.AirIOR,
	}
}

// NewMirror creates an ideal mirror material
func NewMirror() Material {
	return Material{Kind: Mirror, IOR: core.AirIOR}
}

// NewEmissive creates a diffuse light-source material
func NewEmissive(emission core.Vec3) Material {
	return Material{Kind: Lambert, Emission: emission, IOR: core.AirIOR}
}

// NewDielectric creates a transparent material with volumetric absorption
func NewDielectric(ior float64, extinction core.Vec3) Material {
	return Material{Kind: Dielectric, IOR: ior, Extinction: extinction}
}

// IsEmissive reports whether the material emits light
func (m Material) IsEmissive() bool {
	return !m.Emission.IsZero()
}

// Validate checks the load-time invariants of the record
func (m Material) Validate() error {
	if m.Kind < Lambert || m.Kind > Dielectric {
		return fmt.Errorf("unknown material kind %d", m.Kind)
	}
	if m.Shininess < 0 {
		return fmt.Errorf("shininess must be >= 0, got %g", m.Shininess)
	}
	if m.IOR <= 0 {
		return fmt.Errorf("index of refraction must be > 0, got %g", m.IOR)
	}
	return nil
}
