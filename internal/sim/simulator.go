package sim

import (
	"fmt"

	"github.com/san-kum/rkshoot/internal/dynamo"
	"github.com/san-kum/rkshoot/internal/integrators"
)

// Integrate records states from init until stop holds or maxIter states
// have been recorded. Each state is appended before it is advanced, so the
// trajectory starts with init and excludes the state that triggered stop.
// Non-finite values are recorded as produced.
func Integrate(m dynamo.Model, init dynamo.State, h float64, stop StopPredicate, maxIter int) *dynamo.Trajectory {
	traj := dynamo.NewTrajectory(capacity(maxIter))

	s := init
	for n := 0; !stop(s) && n < maxIter; n++ {
		traj.Append(s)
		s = integrators.Step(m, s, h)
	}

	return traj
}

func capacity(maxIter int) int {
	if maxIter < 0 {
		return 0
	}
	if maxIter > 4096 {
		return 4096
	}
	return maxIter
}

// Simulator runs Integrate's loop with a pluggable stepper, observers and
// optional non-finite state detection.
type Simulator struct {
	model     dynamo.Model
	stepper   Stepper
	observers []Observer
}

func New(m dynamo.Model, stepper Stepper) *Simulator {
	if stepper == nil {
		stepper = integrators.NewRK4()
	}
	return &Simulator{
		model:     m,
		stepper:   stepper,
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(init dynamo.State, stop StopPredicate, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if stop == nil {
		stop = Never()
	}

	result := &Result{Trajectory: dynamo.NewTrajectory(capacity(cfg.MaxIter))}

	x := init
	for i := 0; i < cfg.MaxIter; i++ {
		if stop(x) {
			result.Stopped = true
			break
		}
		if cfg.ValidateState && !x.IsValid() {
			result.Final = x
			return result, &dynamo.SimulationError{Step: i, State: x, Wrapped: dynamo.ErrInvalidState}
		}

		result.Trajectory.Append(x)
		for _, obs := range s.observers {
			obs.OnStep(i, x)
		}

		x = s.stepper.Step(s.model, x, cfg.Step)
		result.StepsTaken++
	}

	result.Final = x
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Step <= 0 {
		return fmt.Errorf("step must be positive, got %f", cfg.Step)
	}
	if cfg.MaxIter <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", cfg.MaxIter)
	}
	return nil
}
