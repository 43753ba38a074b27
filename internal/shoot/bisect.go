package shoot

import (
	"errors"
	"fmt"

	"github.com/san-kum/rkshoot/internal/dynamo"
)

// ErrStopped is returned by an OnIter callback to end the search early.
var ErrStopped = errors.New("shoot: stopped by callback")

// Bracket bounds the search parameter. Low < High always holds.
type Bracket struct {
	Low  float64
	High float64
}

func (b Bracket) Mid() float64   { return (b.Low + b.High) / 2 }
func (b Bracket) Width() float64 { return b.High - b.Low }

func (b Bracket) Validate() error {
	if !(b.Low < b.High) {
		return fmt.Errorf("%w: low %v must be below high %v", dynamo.ErrBracket, b.Low, b.High)
	}
	return nil
}

// Slope is the assumed direction of the evaluation over the bracket.
type Slope int

const (
	// Decreasing: a value above the target means the parameter is too low,
	// so the low bound is raised.
	Decreasing Slope = iota
	// Increasing: a value above the target lowers the high bound.
	Increasing
)

func (s Slope) String() string {
	if s == Increasing {
		return "increasing"
	}
	return "decreasing"
}

// Func maps a parameter to the value compared against the target,
// typically the final x of an integrated trajectory.
type Func func(theta float64) (float64, error)

// Iter records one bisection.
type Iter struct {
	K       int
	Theta   float64
	Value   float64
	Bracket Bracket
}

type Search struct {
	Eval       Func
	Target     float64
	Iterations int
	Slope      Slope
	// OnIter is called after every bisection; returning ErrStopped ends the
	// search with the current bracket.
	OnIter func(Iter) error
}

// Step performs one bisection of b.
func (s *Search) Step(b Bracket) (Bracket, Iter, error) {
	theta := b.Mid()
	value, err := s.Eval(theta)
	if err != nil {
		return b, Iter{}, fmt.Errorf("evaluate theta=%v: %w", theta, err)
	}

	tooHigh := value > s.Target
	if s.Slope == Increasing {
		tooHigh = !tooHigh
	}
	if tooHigh {
		b.Low = theta
	} else {
		b.High = theta
	}

	return b, Iter{Theta: theta, Value: value, Bracket: b}, nil
}

// Run bisects b for a fixed number of iterations.
func (s *Search) Run(b Bracket) (Bracket, error) {
	if err := b.Validate(); err != nil {
		return b, err
	}
	if s.Eval == nil {
		return b, errors.New("shoot: no evaluation function")
	}

	for k := 1; k <= s.Iterations; k++ {
		next, it, err := s.Step(b)
		if err != nil {
			return b, err
		}
		b = next

		if s.OnIter != nil {
			it.K = k
			if err := s.OnIter(it); err != nil {
				if errors.Is(err, ErrStopped) {
					return b, nil
				}
				return b, err
			}
		}
	}

	return b, nil
}

// Bisect runs a decreasing-slope search of [low, high] against target.
func Bisect(eval Func, low, high, target float64, iterations int) (Bracket, error) {
	s := &Search{Eval: eval, Target: target, Iterations: iterations}
	return s.Run(Bracket{Low: low, High: high})
}
