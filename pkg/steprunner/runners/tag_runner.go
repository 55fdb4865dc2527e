package runners

import (
	"context"
	"fmt"

	"github.com/arnavsurve/shipstep/pkg/steprunner"
	"github.com/arnavsurve/shipstep/pkg/types"
	"github.com/arnavsurve/shipstep/pkg/vcs"
)

// TagRunner creates the annotated v<version> tag at the release commit.
type TagRunner struct {
	StepCtx types.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory("tag", func(ctx types.ExecutionContext) (steprunner.StepRunner, error) {
		return &TagRunner{
			StepCtx: ctx,
		}, nil
	})
}

func (tr *TagRunner) Validate() error {
	author := tr.StepCtx.Project.VCS.Author
	if author.Name == "" || author.Email == "" {
		return fmt.Errorf("tag step requires vcs.author name and email")
	}

	return nil
}

func (tr *TagRunner) Run() error {
	logger := tr.StepCtx.Logger

	if tr.StepCtx.State.Version == "" {
		return fmt.Errorf("no derived version in run state; derive must run before tag")
	}

	repo, err := openRepo(tr.StepCtx)
	if err != nil {
		return err
	}

	author := tr.StepCtx.Project.VCS.Author
	name := "v" + tr.StepCtx.State.Version

	err = repo.CreateTag(context.Background(), name, name, vcs.Signature{
		Name:  author.Name,
		Email: author.Email,
	})
	if err != nil {
		return err
	}

	logger.Info().Str("tag", name).Msg("Created release tag")

	return nil
}
