package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestSampleCosineHemisphere(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	sampler := NewRandomSampler(random)
	normal := NewVec3(0, 1, 0)

	meanCos := 0.0
	const n = 10000
	for i := 0; i < n; i++ {
		dir := SampleCosineHemisphere(normal, sampler.Get2D())

		if math.Abs(dir.Length()-1) > 1e-9 {
			t.Fatalf("Direction not unit length: %v", dir.Length())
		}
		cos := dir.Dot(normal)
		if cos < 0 {
			t.Fatalf("Direction %v below the hemisphere", dir)
		}
		meanCos += cos
	}

	// Cosine-weighted sampling has E[cos] = 2/3
	meanCos /= n
	if math.Abs(meanCos-2.0/3.0) > 0.01 {
		t.Errorf("Expected mean cosine near 2/3, got %v", meanCos)
	}
}

func TestOrthonormalBasis(t *testing.T) {
	tests := []struct {
		name   string
		normal Vec3
	}{
		{"Y axis", NewVec3(0, 1, 0)},
		{"X axis", NewVec3(1, 0, 0)},
		{"Diagonal", NewVec3(1, 1, 1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tangent, bitangent := OrthonormalBasis(tt.normal)

			const tolerance = 1e-9
			if math.Abs(tangent.Length()-1) > tolerance || math.Abs(bitangent.Length()-1) > tolerance {
				t.Error("Basis vectors not unit length")
			}
			if math.Abs(tangent.Dot(tt.normal)) > tolerance ||
				math.Abs(bitangent.Dot(tt.normal)) > tolerance ||
				math.Abs(tangent.Dot(bitangent)) > tolerance {
				t.Error("Basis vectors not mutually perpendicular")
			}
		})
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	sampler := NewRandomSampler(random)

	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitDisk(sampler.Get2D())
		if p.X*p.X+p.Y*p.Y > 1+1e-12 {
			t.Fatalf("Point (%v, %v) outside the unit disk", p.X, p.Y)
		}
	}

	// Degenerate center sample maps to the origin
	if p := SamplePointInUnitDisk(NewVec2(0.5, 0.5)); p != (Vec2{}) {
		t.Errorf("Expected origin for the center sample, got %v", p)
	}
}

func TestSampleTriangleBarycentric(t *testing.T) {
	random := rand.New(rand.NewSource(13))
	sampler := NewRandomSampler(random)

	for i := 0; i < 1000; i++ {
		u, v := SampleTriangleBarycentric(sampler.Get2D())
		if u < 0 || v < 0 || u+v > 1+1e-12 {
			t.Fatalf("Barycentric coordinates (%v, %v) outside the triangle", u, v)
		}
	}
}
