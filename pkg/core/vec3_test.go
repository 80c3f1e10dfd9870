package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{
			name:     "Unit vector unchanged",
			vector:   NewVec3(1, 0, 0),
			expected: NewVec3(1, 0, 0),
		},
		{
			name:     "Scaled vector",
			vector:   NewVec3(0, 3, 4),
			expected: NewVec3(0, 0.6, 0.8),
		},
		{
			name:     "Zero vector stays zero",
			vector:   Vec3{},
			expected: Vec3{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()

			const tolerance = 1e-12
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Cross(t *testing.T) {
	a := NewVec3(1, 0, 0)
	b := NewVec3(0, 1, 0)

	result := a.Cross(b)
	expected := NewVec3(0, 0, 1)
	if result != expected {
		t.Errorf("Expected %v, got %v", expected, result)
	}

	// Anti-commutative
	reversed := b.Cross(a)
	if reversed != expected.Negate() {
		t.Errorf("Expected %v, got %v", expected.Negate(), reversed)
	}
}

func TestVec3_Clamp(t *testing.T) {
	v := NewVec3(-0.5, 0.5, 1.5)
	result := v.Clamp(0, 1)
	expected := NewVec3(0, 0.5, 1)
	if result != expected {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestVec3_Exp(t *testing.T) {
	v := NewVec3(0, -1, 1)
	result := v.Exp()

	const tolerance = 1e-12
	if math.Abs(result.X-1) > tolerance ||
		math.Abs(result.Y-1/math.E) > tolerance ||
		math.Abs(result.Z-math.E) > tolerance {
		t.Errorf("Expected (1, 1/e, e), got %v", result)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Expected finite vector to be finite")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("Expected NaN component to be non-finite")
	}
	if NewVec3(0, math.Inf(1), 0).IsFinite() {
		t.Error("Expected Inf component to be non-finite")
	}
}

func TestVec3_Component(t *testing.T) {
	v := NewVec3(1, 2, 3)
	for axis, expected := range []float64{1, 2, 3} {
		if got := v.Component(axis); got != expected {
			t.Errorf("Component(%d): expected %v, got %v", axis, expected, got)
		}
	}
}
