package provisioning

import (
	"fmt"
	"time"
)

// RunSteps executes all provisioning steps sequentially.
//
// Each step's Check is consulted first; a satisfied step is skipped and
// recorded in State.SkippedSteps. The run aborts on the first Check or
// Apply failure with no compensation.
func RunSteps(ctx *Context, steps []Step) error {
	start := time.Now()
	ctx.Observer.Printf("Starting provisioning run %s with %d steps...", ctx.State.RunID, len(steps))

	for i, step := range steps {
		stepStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", step.Name(), i+1, len(steps))

		done, err := step.Check(ctx)
		if err != nil {
			LogStepFailed(ctx.Observer, step.Name(), err)
			return fmt.Errorf("%s step precondition failed: %w", step.Name(), err)
		}
		if done {
			ctx.State.SkippedSteps = append(ctx.State.SkippedSteps, step.Name())
			LogStepSkipped(ctx.Observer, step.Name())
			continue
		}

		LogStepStart(ctx.Observer, name)

		if err := step.Apply(ctx); err != nil {
			LogStepFailed(ctx.Observer, step.Name(), err)
			return fmt.Errorf("%s step failed: %w", step.Name(), err)
		}

		LogStepComplete(ctx.Observer, name, time.Since(stepStart))
	}

	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
