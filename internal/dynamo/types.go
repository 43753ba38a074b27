package dynamo

import "math"

// State is a point (x, y, z) where x is the independent variable, y the
// solution value and z = dy/dx.
type State struct {
	X float64
	Y float64
	Z float64
}

func (s State) IsValid() bool {
	for _, v := range [3]float64{s.X, s.Y, s.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Derivative is a pure function of (x, y, z).
type Derivative func(x, y, z float64) float64

// Model is a second-order ODE reduced to first-order form.
// Implementations must be stateless.
type Model interface {
	YPrime(x, y, z float64) float64
	ZPrime(x, y, z float64) float64
}

// Funcs adapts a pair of plain derivative functions to a Model.
type Funcs struct {
	Y Derivative
	Z Derivative
}

func (f Funcs) YPrime(x, y, z float64) float64 { return f.Y(x, y, z) }
func (f Funcs) ZPrime(x, y, z float64) float64 { return f.Z(x, y, z) }

// Trajectory holds the recorded history of an integration. The three
// slices always have equal length and xs is increasing for h > 0.
type Trajectory struct {
	Xs []float64
	Ys []float64
	Zs []float64
}

func NewTrajectory(capacity int) *Trajectory {
	return &Trajectory{
		Xs: make([]float64, 0, capacity),
		Ys: make([]float64, 0, capacity),
		Zs: make([]float64, 0, capacity),
	}
}

func (t *Trajectory) Append(s State) {
	t.Xs = append(t.Xs, s.X)
	t.Ys = append(t.Ys, s.Y)
	t.Zs = append(t.Zs, s.Z)
}

func (t *Trajectory) Len() int {
	return len(t.Xs)
}

func (t *Trajectory) At(i int) State {
	return State{X: t.Xs[i], Y: t.Ys[i], Z: t.Zs[i]}
}

// Last returns the final recorded state, or ErrEmptyTrajectory.
func (t *Trajectory) Last() (State, error) {
	if t == nil || len(t.Xs) == 0 {
		return State{}, ErrEmptyTrajectory
	}
	return t.At(len(t.Xs) - 1), nil
}
