package runners

import (
	"github.com/arnavsurve/shipstep/pkg/types"
	"github.com/arnavsurve/shipstep/pkg/vcs"
)

// openRepo opens the project's repository with the configured remote and
// any push credentials named in the project file.
func openRepo(ctx types.ExecutionContext) (*vcs.Repo, error) {
	cfg := ctx.Project.VCS
	return vcs.Open(ctx.ProjectDir, vcs.Options{
		Remote: cfg.Remote,
		Auth:   vcs.BasicAuthFromEnv(cfg.UsernameEnv, cfg.PasswordEnv),
	})
}

// releaseChangeSet is the exact set of worktree paths a release commit may
// contain: the metadata file and the two regenerated manifests. Nothing
// else is ever staged.
func releaseChangeSet(project *types.Project) []string {
	return []string{
		project.Metadata,
		project.Manifests.Runtime,
		project.Manifests.Dev,
	}
}
