package models

import "math"

const (
	DefaultGravity = 9.81
	DefaultLength  = 1.0
)

// PendulumDrive is the rod equation driven at a fixed angle Theta:
//
//	y' = z
//	z' = (3G)/(2A) sin(Theta) cos(y)
//
// where y is the rod angle phi, z its angular velocity and x is time.
type PendulumDrive struct {
	Theta   float64
	Gravity float64
	Length  float64
}

func NewPendulumDrive(theta float64) *PendulumDrive {
	return &PendulumDrive{
		Theta:   theta,
		Gravity: DefaultGravity,
		Length:  DefaultLength,
	}
}

func (p *PendulumDrive) YPrime(x, y, z float64) float64 {
	return reduced(x, y, z)
}

func (p *PendulumDrive) ZPrime(x, y, z float64) float64 {
	return 3 * p.Gravity / (2 * p.Length) * math.Sin(p.Theta) * math.Cos(y)
}
