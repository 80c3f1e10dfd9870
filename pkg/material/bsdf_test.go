package material

import (
	"math"
	"testing"

	"github.com/jkvist/go-bsp-pathtracer/pkg/core"
)

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		incoming core.Vec3
		normal   core.Vec3
		expected core.Vec3
	}{
		{
			name:     "45 degree reflection",
			incoming: core.NewVec3(1, -1, 0).Normalize(),
			normal:   core.NewVec3(0, 1, 0),
			expected: core.NewVec3(1, 1, 0).Normalize(),
		},
		{
			name:     "Head-on reflection",
			incoming: core.NewVec3(0, -1, 0),
			normal:   core.NewVec3(0, 1, 0),
			expected: core.NewVec3(0, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Reflect(tt.incoming, tt.normal)
			if result.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	incoming := core.NewVec3(1, -1, 0).Normalize() // 45 degrees
	ratio := 1.0 / 1.5                             // Air into glass

	refracted, ok := Refract(incoming, normal, ratio)
	if !ok {
		t.Fatal("Expected refraction, got total internal reflection")
	}

	if math.Abs(refracted.Length()-1) > 1e-9 {
		t.Errorf("Refracted direction not unit length: %v", refracted.Length())
	}

	// sin(theta_t) = ratio * sin(theta_i)
	sinIncident := math.Sqrt(0.5)
	sinRefracted := math.Abs(refracted.X)
	if math.Abs(sinRefracted-ratio*sinIncident) > 1e-9 {
		t.Errorf("Snell's law violated: sin_t=%v, expected %v", sinRefracted, ratio*sinIncident)
	}
}

func TestRefract_TotalInternalReflection(t *testing.T) {
	// Glass into air: the critical angle for ior 1.5 is asin(1/1.5) = 41.8 deg
	normal := core.NewVec3(0, 1, 0)
	ratio := 1.5

	critical := math.Asin(1.0 / 1.5)

	// Just below the critical angle refraction still happens
	below := critical - 0.01
	incoming := core.NewVec3(math.Sin(below), -math.Cos(below), 0)
	if _, ok := Refract(incoming, normal, ratio); !ok {
		t.Error("Expected refraction below the critical angle")
	}

	// Just above, the discriminant goes negative
	above := critical + 0.01
	incoming = core.NewVec3(math.Sin(above), -math.Cos(above), 0)
	if _, ok := Refract(incoming, normal, ratio); ok {
		t.Error("Expected total internal reflection above the critical angle")
	}
}

func TestReflectance_Schlick(t *testing.T) {
	ratio := 1.0 / 1.5
	r0 := math.Pow((1-ratio)/(1+ratio), 2)

	// Head-on incidence gives the base reflectance
	if r := Reflectance(1.0, ratio); math.Abs(r-r0) > 1e-12 {
		t.Errorf("Expected r0=%v at normal incidence, got %v", r0, r)
	}

	// Grazing incidence approaches total reflection
	if r := Reflectance(0.0, ratio); math.Abs(r-1.0) > 1e-12 {
		t.Errorf("Expected reflectance 1 at grazing incidence, got %v", r)
	}

	// Monotonically increasing towards grazing angles
	if Reflectance(0.3, ratio) <= Reflectance(0.8, ratio) {
		t.Error("Expected reflectance to grow towards grazing incidence")
	}
}

func TestBouguerAttenuation(t *testing.T) {
	extinction := core.NewVec3(0.5, 1.0, 2.0)

	result := BouguerAttenuation(extinction, 2.0)
	expected := core.NewVec3(math.Exp(-1), math.Exp(-2), math.Exp(-4))
	if result.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, result)
	}

	// Zero extinction and zero distance both transmit fully
	one := core.NewVec3(1, 1, 1)
	if got := BouguerAttenuation(core.Vec3{}, 5.0); got != one {
		t.Errorf("Expected full transmission for zero extinction, got %v", got)
	}
	if got := BouguerAttenuation(extinction, 0); got != one {
		t.Errorf("Expected full transmission for zero distance, got %v", got)
	}
}

func TestMaterial_Validate(t *testing.T) {
	if err := NewLambert(core.NewVec3(0.5, 0.5, 0.5)).Validate(); err != nil {
		t.Errorf("Expected valid material, got %v", err)
	}

	bad := NewPhong(core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0.3, 0.3, 0.3), -1)
	if err := bad.Validate(); err == nil {
		t.Error("Expected negative shininess to fail validation")
	}

	bad = NewDielectric(0, core.Vec3{})
	if err := bad.Validate(); err == nil {
		t.Error("Expected zero IOR to fail validation")
	}
}

func TestMaterial_IsEmissive(t *testing.T) {
	if NewLambert(core.NewVec3(0.5, 0.5, 0.5)).IsEmissive() {
		t.Error("Lambert material must not be emissive")
	}
	if !NewEmissive(core.NewVec3(1, 1, 1)).IsEmissive() {
		t.Error("Emissive material must be emissive")
	}

	// The ambient term alone does not make a light source
	mat := NewLambert(core.NewVec3(0.5, 0.5, 0.5))
	mat.Ambient = core.NewVec3(0.1, 0.1, 0.1)
	if mat.IsEmissive() {
		t.Error("Ambient term must not mark the material emissive")
	}
}
