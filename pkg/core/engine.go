package core

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arnavsurve/shipstep/pkg/steprunner"
)

// Engine executes a plan's steps strictly in order, halting on the first
// error. There is no retry, no compensation, and no cleanup on failure; a
// partial run is inferred only by inspecting the working tree afterwards.
type Engine struct {
	Logger zerolog.Logger
}

func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{
		Logger: logger,
	}
}

// Execute builds and validates every runner in the plan, then runs each in
// order. Validation of the whole plan happens before the first step runs so
// a misconfigured late step cannot leave an earlier step's side effects
// behind.
func (e *Engine) Execute(plan []Step, base ExecutionContext) error {
	runners := make([]steprunner.StepRunner, len(plan))

	for i, step := range plan {
		execCtx := base
		execCtx.Step = step
		execCtx.Logger = e.Logger.With().Str("step", step.ID).Logger()

		runner, err := steprunner.GetRunner(execCtx)
		if err != nil {
			return fmt.Errorf("getting runner for step %q: %w", step.ID, err)
		}

		if err := runner.Validate(); err != nil {
			return fmt.Errorf("validating step %q: %w", step.ID, err)
		}

		runners[i] = runner
	}

	for i, step := range plan {
		e.Logger.Info().Msgf("Running step %q (uses=%s)", step.ID, step.Uses)

		if err := runners[i].Run(); err != nil {
			return fmt.Errorf("step %q failed: %w", step.ID, err)
		}
	}

	return nil
}
