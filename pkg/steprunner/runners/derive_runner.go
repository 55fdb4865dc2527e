package runners

import (
	"fmt"

	"github.com/arnavsurve/shipstep/pkg/core"
	"github.com/arnavsurve/shipstep/pkg/metadata"
	"github.com/arnavsurve/shipstep/pkg/steprunner"
	"github.com/arnavsurve/shipstep/pkg/types"
	"github.com/arnavsurve/shipstep/pkg/version"
)

// DeriveRunner reads the stored version back from project metadata, strips
// any packaging-namespace prefix, and records the canonical bare semver
// string every later step uses. It never mutates anything.
type DeriveRunner struct {
	StepCtx types.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory("derive", func(ctx types.ExecutionContext) (steprunner.StepRunner, error) {
		return &DeriveRunner{
			StepCtx: ctx,
		}, nil
	})
}

func (dr *DeriveRunner) Validate() error {
	if dr.StepCtx.Project.Metadata == "" {
		return fmt.Errorf("derive step requires a metadata file path")
	}
	if dr.StepCtx.State == nil {
		return fmt.Errorf("derive step requires run state")
	}

	return nil
}

func (dr *DeriveRunner) Run() error {
	logger := dr.StepCtx.Logger
	store := metadata.NewStore(core.ResolvePathFromProject(dr.StepCtx.ProjectDir, dr.StepCtx.Project.Metadata))

	raw, err := store.ReadVersion()
	if err != nil {
		return err
	}

	canonical, err := version.Canonical(dr.StepCtx.Project.Name, raw)
	if err != nil {
		return err
	}

	dr.StepCtx.State.Version = canonical

	// Report the derived version to the operator before anything embeds it.
	logger.Info().Str("version", canonical).Msg("Release version derived")

	return nil
}
