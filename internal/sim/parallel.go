package sim

import (
	"context"
	"sync"

	"github.com/san-kum/rkshoot/internal/dynamo"
)

// Job is one independent integration.
type Job struct {
	Name  string
	Model dynamo.Model
	Init  dynamo.State
	Stop  StopPredicate
}

// Ensemble runs independent integrations concurrently. Each run is
// single-threaded and owns its trajectory.
type Ensemble struct {
	stepper Stepper
	cfg     Config
}

func NewEnsemble(stepper Stepper, cfg Config) *Ensemble {
	return &Ensemble{stepper: stepper, cfg: cfg}
}

func (e *Ensemble) Run(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}

			job := jobs[idx]
			s := New(job.Model, e.stepper)
			results[idx], errs[idx] = s.Run(job.Init, job.Stop, e.cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
