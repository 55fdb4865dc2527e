package runners

import (
	"context"
	"fmt"

	"github.com/arnavsurve/shipstep/pkg/steprunner"
	"github.com/arnavsurve/shipstep/pkg/types"
)

// StageRunner stages exactly three paths: the metadata file and both
// regenerated manifests.
type StageRunner struct {
	StepCtx types.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory("stage", func(ctx types.ExecutionContext) (steprunner.StepRunner, error) {
		return &StageRunner{
			StepCtx: ctx,
		}, nil
	})
}

func (sr *StageRunner) Validate() error {
	for _, path := range releaseChangeSet(sr.StepCtx.Project) {
		if path == "" {
			return fmt.Errorf("stage step requires metadata and manifest paths")
		}
	}

	return nil
}

func (sr *StageRunner) Run() error {
	logger := sr.StepCtx.Logger

	repo, err := openRepo(sr.StepCtx)
	if err != nil {
		return err
	}

	paths := releaseChangeSet(sr.StepCtx.Project)
	if err := repo.Stage(context.Background(), paths...); err != nil {
		return err
	}

	logger.Info().Strs("paths", paths).Msg("Staged release change set")

	return nil
}
