package runners

import (
	"context"
	"fmt"

	"github.com/arnavsurve/shipstep/pkg/execx"
	"github.com/arnavsurve/shipstep/pkg/steprunner"
	"github.com/arnavsurve/shipstep/pkg/types"
)

// VerifyRunner runs the test suite and the fatal error-lint pass, then the
// style pass whose findings are reported but never abort the run.
type VerifyRunner struct {
	StepCtx types.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory("verify", func(ctx types.ExecutionContext) (steprunner.StepRunner, error) {
		return &VerifyRunner{
			StepCtx: ctx,
		}, nil
	})
}

func (vr *VerifyRunner) Validate() error {
	verify := vr.StepCtx.Project.Verify

	if len(verify.Test) == 0 {
		return fmt.Errorf("verify step requires a test command")
	}
	if len(verify.Lint) == 0 {
		return fmt.Errorf("verify step requires a lint command")
	}

	return nil
}

func (vr *VerifyRunner) Run() error {
	logger := vr.StepCtx.Logger
	verify := vr.StepCtx.Project.Verify
	dir := vr.StepCtx.ProjectDir

	logger.Info().Strs("argv", verify.Test).Msg("Running test suite")
	if _, err := execx.Run(context.Background(), verify.Test, execx.WithDir(dir), execx.WithLogger(logger, "test")); err != nil {
		return fmt.Errorf("test suite failed: %w", err)
	}

	logger.Info().Strs("argv", verify.Lint).Msg("Running error lint")
	if _, err := execx.Run(context.Background(), verify.Lint, execx.WithDir(dir), execx.WithLogger(logger, "lint")); err != nil {
		return fmt.Errorf("error lint failed: %w", err)
	}

	if len(verify.Style) == 0 {
		logger.Debug().Msg("No style command configured, skipping style pass")
		return nil
	}

	// The style pass is reporting-only. Its exit status is forced to
	// success regardless of findings.
	logger.Info().Strs("argv", verify.Style).Msg("Running style lint (non-fatal)")
	if _, err := execx.Run(context.Background(), verify.Style, execx.WithDir(dir), execx.WithLogger(logger, "style")); err != nil {
		logger.Warn().Err(err).Msg("Style lint reported findings, continuing")
	}

	return nil
}
