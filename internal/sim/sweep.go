package sim

import (
	"context"
	"sync"

	"github.com/JJonas1998/Projekt-9/internal/control"
	"github.com/JJonas1998/Projekt-9/internal/reactor"
)

// SweepResult pairs one gain set with the run it produced.
type SweepResult struct {
	Params control.Params
	Result *Result
	Err    error
}

// Sweep runs the same window once per gain set, in parallel. Every case
// gets its own controller and simulator so no mutable state is shared
// between concurrent runs; the heat-transfer model is shared because it
// is stateless.
func Sweep(ctx context.Context, model *reactor.Model, geo reactor.Geometry, cfg Config, gains []control.Params) []SweepResult {
	results := make([]SweepResult, len(gains))

	var wg sync.WaitGroup
	for i, params := range gains {
		wg.Add(1)
		go func(idx int, p control.Params) {
			defer wg.Done()

			results[idx].Params = p
			pid, err := control.NewPID(p)
			if err != nil {
				results[idx].Err = err
				return
			}
			results[idx].Result, results[idx].Err = New(model, pid).Run(ctx, geo, cfg)
		}(i, params)
	}
	wg.Wait()

	return results
}
