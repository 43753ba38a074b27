package sim

import (
	"github.com/san-kum/rkshoot/internal/dynamo"
)

// DefaultMaxIter bounds an integration whose stop predicate never fires.
const DefaultMaxIter = 1000

// Stepper advances a state by one fixed step.
type Stepper interface {
	Step(m dynamo.Model, s dynamo.State, h float64) dynamo.State
}

// Observer is notified of every recorded state.
type Observer interface {
	OnStep(step int, s dynamo.State)
}

type Config struct {
	Step          float64
	MaxIter       int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Step:          0.01,
		MaxIter:       DefaultMaxIter,
		ValidateState: false,
	}
}

type Result struct {
	Trajectory *dynamo.Trajectory
	Final      dynamo.State
	StepsTaken int
	Stopped    bool
}
