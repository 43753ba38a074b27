package shoot

import (
	"fmt"

	"github.com/san-kum/rkshoot/internal/dynamo"
	"github.com/san-kum/rkshoot/internal/sim"
)

// Factory binds a parameter to a derivative model.
type Factory func(theta float64) dynamo.Model

// Shot holds the fixed integration settings of every trajectory in a search.
type Shot struct {
	Init    dynamo.State
	Step    float64
	MaxIter int
	Stop    sim.StopPredicate
}

// FinalX evaluates a parameter as the last recorded x of its trajectory.
func FinalX(factory Factory, shot Shot) Func {
	return func(theta float64) (float64, error) {
		traj := sim.Integrate(factory(theta), shot.Init, shot.Step, shot.Stop, shot.MaxIter)
		last, err := traj.Last()
		if err != nil {
			return 0, fmt.Errorf("theta=%v: %w", theta, err)
		}
		return last.X, nil
	}
}
