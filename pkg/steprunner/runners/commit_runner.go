package runners

import (
	"context"
	"fmt"

	"github.com/arnavsurve/shipstep/pkg/steprunner"
	"github.com/arnavsurve/shipstep/pkg/types"
	"github.com/arnavsurve/shipstep/pkg/vcs"
)

// CommitRunner commits the staged change set with message v<version>.
type CommitRunner struct {
	StepCtx types.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory("commit", func(ctx types.ExecutionContext) (steprunner.StepRunner, error) {
		return &CommitRunner{
			StepCtx: ctx,
		}, nil
	})
}

func (cr *CommitRunner) Validate() error {
	author := cr.StepCtx.Project.VCS.Author
	if author.Name == "" || author.Email == "" {
		return fmt.Errorf("commit step requires vcs.author name and email")
	}

	return nil
}

func (cr *CommitRunner) Run() error {
	logger := cr.StepCtx.Logger

	if cr.StepCtx.State.Version == "" {
		return fmt.Errorf("no derived version in run state; derive must run before commit")
	}

	repo, err := openRepo(cr.StepCtx)
	if err != nil {
		return err
	}

	author := cr.StepCtx.Project.VCS.Author
	msg := "v" + cr.StepCtx.State.Version

	hash, err := repo.Commit(context.Background(), msg, vcs.Signature{
		Name:  author.Name,
		Email: author.Email,
	})
	if err != nil {
		return err
	}

	logger.Info().Str("commit", hash).Str("message", msg).Msg("Created release commit")

	return nil
}
