package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration and search operations.
var (
	// ErrInvalidState indicates a state with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrSingular indicates a model evaluated at a singular point (x = 0 for the polytrope).
	ErrSingular = errors.New("dynamo: model evaluated at a singular point")

	// ErrEmptyTrajectory indicates an integration that recorded no points.
	ErrEmptyTrajectory = errors.New("dynamo: trajectory is empty")

	// ErrBracket indicates a search bracket with low >= high.
	ErrBracket = errors.New("dynamo: invalid parameter bracket")
)

// SimulationError wraps an error with integration context.
type SimulationError struct {
	Step    int
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (x=%.4f): %v", e.Step, e.State.X, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
