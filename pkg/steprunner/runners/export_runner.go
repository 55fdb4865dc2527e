package runners

import (
	"fmt"

	"github.com/arnavsurve/shipstep/pkg/core"
	"github.com/arnavsurve/shipstep/pkg/manifest"
	"github.com/arnavsurve/shipstep/pkg/metadata"
	"github.com/arnavsurve/shipstep/pkg/steprunner"
	"github.com/arnavsurve/shipstep/pkg/types"
)

// ExportRunner regenerates both dependency manifests from the lockfile,
// overwriting whatever was there before.
type ExportRunner struct {
	StepCtx types.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory("export", func(ctx types.ExecutionContext) (steprunner.StepRunner, error) {
		return &ExportRunner{
			StepCtx: ctx,
		}, nil
	})
}

func (er *ExportRunner) Validate() error {
	project := er.StepCtx.Project

	if project.Lockfile == "" {
		return fmt.Errorf("export step requires a lockfile path")
	}
	if project.Manifests.Runtime == "" || project.Manifests.Dev == "" {
		return fmt.Errorf("export step requires runtime and dev manifest paths")
	}

	return nil
}

func (er *ExportRunner) Run() error {
	logger := er.StepCtx.Logger
	project := er.StepCtx.Project
	dir := er.StepCtx.ProjectDir

	lock, err := manifest.LoadLockfile(core.ResolvePathFromProject(dir, project.Lockfile))
	if err != nil {
		return err
	}

	meta, err := metadata.NewStore(core.ResolvePathFromProject(dir, project.Metadata)).Read()
	if err != nil {
		return err
	}

	exporter := &manifest.Exporter{
		Lock:   lock,
		Extras: meta.Extras,
	}

	runtimePath := core.ResolvePathFromProject(dir, project.Manifests.Runtime)
	if err := exporter.WriteRuntime(runtimePath, project.Manifests.Extras); err != nil {
		return err
	}
	logger.Info().
		Str("path", project.Manifests.Runtime).
		Strs("extras", project.Manifests.Extras).
		Msg("Exported runtime manifest")

	devPath := core.ResolvePathFromProject(dir, project.Manifests.Dev)
	if err := exporter.WriteDev(devPath); err != nil {
		return err
	}
	logger.Info().Str("path", project.Manifests.Dev).Msg("Exported dev manifest")

	return nil
}
