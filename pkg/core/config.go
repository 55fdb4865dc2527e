package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arnavsurve/shipstep/pkg/types"
)

type Project = types.Project

// LoadProjectFromFile reads and parses the shipstep.yml project file,
// applies defaults, and validates the result.
func LoadProjectFromFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file %q: %w", path, err)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project YAML: %w", err)
	}

	ApplyDefaults(&p)

	if err := ValidateProject(&p); err != nil {
		return nil, fmt.Errorf("invalid project: %w", err)
	}

	return &p, nil
}

// ApplyDefaults fills in every field the project file may omit.
func ApplyDefaults(p *Project) {
	if p.Metadata == "" {
		p.Metadata = "project.yml"
	}
	if p.Lockfile == "" {
		p.Lockfile = "shipstep.lock"
	}
	if p.Manifests.Runtime == "" {
		p.Manifests.Runtime = "requirements.txt"
	}
	if p.Manifests.Dev == "" {
		p.Manifests.Dev = "requirements_dev.txt"
	}
	if p.VCS.Remote == "" {
		p.VCS.Remote = "origin"
	}
	if p.BuildDir == "" {
		p.BuildDir = "dist"
	}
	if p.Publish.Tag == "" {
		p.Publish.Tag = "dev"
	}
	if len(p.Publish.Platforms) == 0 {
		p.Publish.Platforms = []string{"linux/amd64", "linux/arm64", "linux/arm/v7"}
	}
	if p.Publish.Dockerfile == "" {
		p.Publish.Dockerfile = "Dockerfile"
	}
	if p.Publish.Context == "" {
		p.Publish.Context = "."
	}
}

// ValidateProject rejects configurations no step could execute.
func ValidateProject(p *Project) error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if len(p.Verify.Test) == 0 {
		return fmt.Errorf("verify.test command is required")
	}
	if len(p.Verify.Lint) == 0 {
		return fmt.Errorf("verify.lint command is required")
	}
	if p.VCS.Author.Name == "" || p.VCS.Author.Email == "" {
		return fmt.Errorf("vcs.author name and email are required")
	}
	return nil
}
