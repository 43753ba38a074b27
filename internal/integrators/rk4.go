package integrators

import "github.com/san-kum/rkshoot/internal/dynamo"

// Stage is one (k, l) pair: the y and z increments of an RK4 sub-step.
type Stage struct {
	K float64
	L float64
}

// Stages computes the four RK4 stage pairs for one step of size h from s.
// Each stage feeds both the y and the z increments of the previous stage
// into the next evaluation.
func Stages(m dynamo.Model, s dynamo.State, h float64) [4]Stage {
	x, y, z := s.X, s.Y, s.Z

	k1 := h * m.YPrime(x, y, z)
	l1 := h * m.ZPrime(x, y, z)

	k2 := h * m.YPrime(x+0.5*h, y+0.5*k1, z+0.5*l1)
	l2 := h * m.ZPrime(x+0.5*h, y+0.5*k1, z+0.5*l1)

	k3 := h * m.YPrime(x+0.5*h, y+0.5*k2, z+0.5*l2)
	l3 := h * m.ZPrime(x+0.5*h, y+0.5*k2, z+0.5*l2)

	k4 := h * m.YPrime(x+h, y+k3, z+l3)
	l4 := h * m.ZPrime(x+h, y+k3, z+l3)

	return [4]Stage{{k1, l1}, {k2, l2}, {k3, l3}, {k4, l4}}
}

// Increments combines the stages with the 1/6, 1/3, 1/3, 1/6 weights.
func Increments(st [4]Stage) (dy, dz float64) {
	dy = st[0].K/6 + st[1].K/3 + st[2].K/3 + st[3].K/6
	dz = st[0].L/6 + st[1].L/3 + st[2].L/3 + st[3].L/6
	return dy, dz
}

// Step advances s by one classical RK4 step of size h.
func Step(m dynamo.Model, s dynamo.State, h float64) dynamo.State {
	dy, dz := Increments(Stages(m, s, h))
	return dynamo.State{X: s.X + h, Y: s.Y + dy, Z: s.Z + dz}
}

// RK4 is the fixed-step stepper used by the simulator.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(m dynamo.Model, s dynamo.State, h float64) dynamo.State {
	return Step(m, s, h)
}
