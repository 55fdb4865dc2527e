package runners

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arnavsurve/shipstep/pkg/core"
	"github.com/arnavsurve/shipstep/pkg/steprunner"
	"github.com/arnavsurve/shipstep/pkg/types"
)

// CleanRunner removes the local build-output directory as the final
// housekeeping step. It is unconditional: by the time it runs, every
// earlier step has already succeeded.
type CleanRunner struct {
	StepCtx types.ExecutionContext
}

func init() {
	steprunner.RegisterRunnerFactory("clean", func(ctx types.ExecutionContext) (steprunner.StepRunner, error) {
		return &CleanRunner{
			StepCtx: ctx,
		}, nil
	})
}

func (cr *CleanRunner) Validate() error {
	buildDir := cr.StepCtx.Project.BuildDir
	if buildDir == "" {
		return fmt.Errorf("clean step requires a build directory")
	}
	if filepath.Clean(buildDir) == "." || filepath.Clean(buildDir) == string(filepath.Separator) {
		return fmt.Errorf("refusing to clean %q", buildDir)
	}

	return nil
}

func (cr *CleanRunner) Run() error {
	logger := cr.StepCtx.Logger
	buildDir := core.ResolvePathFromProject(cr.StepCtx.ProjectDir, cr.StepCtx.Project.BuildDir)

	if err := os.RemoveAll(buildDir); err != nil {
		return fmt.Errorf("removing build directory %q: %w", buildDir, err)
	}

	logger.Info().Str("path", cr.StepCtx.Project.BuildDir).Msg("Removed build output directory")

	return nil
}
