package epidemic

import (
	"context"
	"fmt"
)

// StepHook is invoked after every step of Run. Returning an error stops
// the run and the error is propagated.
type StepHook func(StepResult) error

// Run steps e until a step infects nobody, maxSteps steps have been taken
// (maxSteps ≤ 0 means no limit), ctx is done, or hook returns an error.
// It returns the results of every completed step, including the last one
// on error.
//
// Without a limit Run still terminates: every step except the last
// infects at least one node, so at most N+1 steps are taken.
func Run(ctx context.Context, e *Engine, maxSteps int, hook StepHook) ([]StepResult, error) {
	if e == nil {
		return nil, ErrEngineNil
	}

	results := make([]StepResult, 0)
	for maxSteps <= 0 || len(results) < maxSteps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := e.Step()
		results = append(results, res)
		if hook != nil {
			if err := hook(res); err != nil {
				return results, fmt.Errorf("Run: hook at step %d: %w", res.TimeStep, err)
			}
		}
		if res.IsOutbreakOver {
			break
		}
	}

	return results, nil
}
