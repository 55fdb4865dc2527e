package core_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/shipstep/pkg/core"
)

const minimalProject = `
name: opennem
verify:
  test: ["pytest"]
  lint: ["ruff", "check", "--select", "E9,F821", "."]
vcs:
  author:
    name: Release Bot
    email: release@example.com
`

func TestLoadProjectFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipstep.yml")
	require.NoError(t, os.WriteFile(path, []byte(minimalProject), 0644))

	p, err := core.LoadProjectFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "opennem", p.Name)
	assert.Equal(t, []string{"pytest"}, p.Verify.Test)

	// Defaults fill in everything the file omitted
	assert.Equal(t, "project.yml", p.Metadata)
	assert.Equal(t, "shipstep.lock", p.Lockfile)
	assert.Equal(t, "requirements.txt", p.Manifests.Runtime)
	assert.Equal(t, "requirements_dev.txt", p.Manifests.Dev)
	assert.Equal(t, "origin", p.VCS.Remote)
	assert.Equal(t, "dist", p.BuildDir)
	assert.Equal(t, "dev", p.Publish.Tag)
	assert.Equal(t, []string{"linux/amd64", "linux/arm64", "linux/arm/v7"}, p.Publish.Platforms)
	assert.Equal(t, "Dockerfile", p.Publish.Dockerfile)
	assert.Equal(t, ".", p.Publish.Context)
}

func TestLoadProjectFromFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		errorMsg string
	}{
		{
			name:     "missing name",
			content:  "verify:\n  test: [\"pytest\"]\n  lint: [\"ruff\"]\n",
			errorMsg: "project name is required",
		},
		{
			name:     "missing test command",
			content:  "name: x\nverify:\n  lint: [\"ruff\"]\nvcs:\n  author: {name: a, email: b}\n",
			errorMsg: "verify.test command is required",
		},
		{
			name:     "missing lint command",
			content:  "name: x\nverify:\n  test: [\"pytest\"]\nvcs:\n  author: {name: a, email: b}\n",
			errorMsg: "verify.lint command is required",
		},
		{
			name:     "missing author",
			content:  "name: x\nverify:\n  test: [\"pytest\"]\n  lint: [\"ruff\"]\n",
			errorMsg: "vcs.author name and email are required",
		},
		{
			name:     "invalid yaml",
			content:  "name: [unclosed",
			errorMsg: "parsing project YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "shipstep.yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := core.LoadProjectFromFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}

	_, err := core.LoadProjectFromFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestReleasePlanOrder(t *testing.T) {
	var order []string
	for _, step := range core.ReleasePlan() {
		order = append(order, step.Uses)
	}

	assert.Equal(t, []string{
		"verify", "bump", "derive", "export", "stage",
		"commit", "tag", "push", "clean",
	}, order)
}

func TestPublishPlanOrder(t *testing.T) {
	var order []string
	for _, step := range core.PublishPlan() {
		order = append(order, step.Uses)
	}

	// Publish derives the version read-only; it never bumps
	assert.Equal(t, []string{"derive", "image"}, order)
}

func TestResolvePathFromProject(t *testing.T) {
	assert.Equal(t, "/abs/path", core.ResolvePathFromProject("/project", "/abs/path"))
	assert.Equal(t, filepath.Join("/project", "project.yml"), core.ResolvePathFromProject("/project", "project.yml"))
}
