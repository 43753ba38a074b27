package models

import (
	"math"
	"testing"
)

func TestPolytropeDerivatives(t *testing.T) {
	tests := []struct {
		name    string
		n       float64
		x, y, z float64
		want    float64
	}{
		{"n0 at rest", 0, 1, 1, 0, -1},
		{"n1", 1, 2, 0.5, -0.25, -0.5 + 0.25},
		{"n3", 3, 1, 0.5, -1, -0.125 + 2},
		{"n1.5 positive y", 1.5, 1, 0.25, 0, -0.125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPolytrope(tt.n)
			if got := p.YPrime(tt.x, tt.y, tt.z); got != tt.z {
				t.Errorf("YPrime = %v, want %v", got, tt.z)
			}
			if got := p.ZPrime(tt.x, tt.y, tt.z); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("ZPrime = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolytropeDomainError(t *testing.T) {
	p := NewPolytrope(1.5)
	if got := p.ZPrime(1, -0.5, 0); !math.IsNaN(got) {
		t.Errorf("expected NaN for negative y with non-integer n, got %v", got)
	}

	p = NewPolytrope(3)
	if got := p.ZPrime(1, -0.5, 0); math.IsNaN(got) {
		t.Error("integer n should accept negative y")
	}
}

func TestPolytropeSingular(t *testing.T) {
	p := NewPolytrope(1)
	if got := p.ZPrime(0, 1, -0.1); !math.IsInf(got, 0) {
		t.Errorf("expected Inf at x = 0, got %v", got)
	}
}
