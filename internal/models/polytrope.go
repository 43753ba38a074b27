package models

import "math"

// Polytrope is the Lane-Emden equation of index N:
//
//	y' = z
//	z' = -y^N - (2/x) z
//
// ZPrime is singular at x = 0; integration must start at x > 0. A negative y
// with a non-integer N yields NaN, which is returned as is.
type Polytrope struct {
	N float64
}

func NewPolytrope(n float64) *Polytrope {
	return &Polytrope{N: n}
}

func (p *Polytrope) YPrime(x, y, z float64) float64 {
	return reduced(x, y, z)
}

func (p *Polytrope) ZPrime(x, y, z float64) float64 {
	return -math.Pow(y, p.N) - 2/x*z
}
