package core

import "github.com/arnavsurve/shipstep/pkg/types"

type Step = types.Step

type State = types.State

type ExecutionContext = types.ExecutionContext

// ReleasePlan is the fixed, strictly ordered release sequence. The order is
// load-bearing: verification must precede any mutation, the version must be
// derived before anything embeds it, and nothing is pushed until the local
// commit and tag exist.
func ReleasePlan() []Step {
	return []Step{
		{ID: "verify", Uses: "verify"},
		{ID: "bump", Uses: "bump"},
		{ID: "derive", Uses: "derive"},
		{ID: "export", Uses: "export"},
		{ID: "stage", Uses: "stage"},
		{ID: "commit", Uses: "commit"},
		{ID: "tag", Uses: "tag"},
		{ID: "push", Uses: "push"},
		{ID: "clean", Uses: "clean"},
	}
}

// PublishPlan builds and pushes the container image. The version is derived
// read-only; publish never bumps.
func PublishPlan() []Step {
	return []Step{
		{ID: "derive", Uses: "derive"},
		{ID: "image", Uses: "image"},
	}
}
