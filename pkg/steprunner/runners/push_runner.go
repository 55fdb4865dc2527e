package runners

import (
	"context"
	"fmt"

	"github.com/arnavsurve/shipstep/pkg/steprunner"
	"github.com/arnavsurve/shipstep/pkg/types"
)

// PushRunner publishes the release: the current branch and the v<version>
// tag go to the configured remote, and the branch's upstream tracking is
// established if missing. Past this step there is no rollback path.
type PushRunner struct {
	StepCtx types.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory("push", func(ctx types.ExecutionContext) (steprunner.StepRunner, error) {
		return &PushRunner{
			StepCtx: ctx,
		}, nil
	})
}

func (pr *PushRunner) Validate() error {
	if pr.StepCtx.Project.VCS.Remote == "" {
		return fmt.Errorf("push step requires a remote name")
	}

	return nil
}

func (pr *PushRunner) Run() error {
	logger := pr.StepCtx.Logger

	if pr.StepCtx.State.Version == "" {
		return fmt.Errorf("no derived version in run state; derive must run before push")
	}

	repo, err := openRepo(pr.StepCtx)
	if err != nil {
		return err
	}

	tag := "v" + pr.StepCtx.State.Version
	if err := repo.PushWithTag(context.Background(), tag); err != nil {
		return err
	}

	logger.Info().
		Str("tag", tag).
		Str("remote", pr.StepCtx.Project.VCS.Remote).
		Msg("Pushed release to remote")

	return nil
}
