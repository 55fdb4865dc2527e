package runners

import (
	"fmt"

	"github.com/arnavsurve/shipstep/pkg/core"
	"github.com/arnavsurve/shipstep/pkg/metadata"
	"github.com/arnavsurve/shipstep/pkg/steprunner"
	"github.com/arnavsurve/shipstep/pkg/types"
	"github.com/arnavsurve/shipstep/pkg/version"
)

// BumpRunner is the single mutation point for the project version: an
// explicit read of the stored version, a semver increment, and an explicit
// write back.
type BumpRunner struct {
	StepCtx types.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory("bump", func(ctx types.ExecutionContext) (steprunner.StepRunner, error) {
		return &BumpRunner{
			StepCtx: ctx,
		}, nil
	})
}

func (br *BumpRunner) Validate() error {
	if br.StepCtx.Project.Metadata == "" {
		return fmt.Errorf("bump step requires a metadata file path")
	}
	if br.StepCtx.State == nil {
		return fmt.Errorf("bump step requires run state")
	}

	return nil
}

func (br *BumpRunner) Run() error {
	logger := br.StepCtx.Logger
	store := metadata.NewStore(core.ResolvePathFromProject(br.StepCtx.ProjectDir, br.StepCtx.Project.Metadata))

	current, err := store.ReadVersion()
	if err != nil {
		return err
	}

	// An unrecognized kind errors out of the version component here,
	// before the stored version is touched.
	next, err := version.Bump(current, version.Kind(br.StepCtx.State.Kind))
	if err != nil {
		return err
	}

	if err := store.WriteVersion(next); err != nil {
		return err
	}

	logger.Info().
		Str("from", current).
		Str("to", next).
		Str("kind", br.StepCtx.State.Kind).
		Msg("Bumped project version")

	return nil
}
