package core_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/shipstep/pkg/core"
	"github.com/arnavsurve/shipstep/pkg/steprunner"
	"github.com/arnavsurve/shipstep/pkg/types"
)

// fakeRunner records executions into a shared trace so tests can assert
// ordering and fail-fast behavior.
type fakeRunner struct {
	id          string
	trace       *[]string
	validateErr error
	runErr      error
}

func (f *fakeRunner) Validate() error {
	return f.validateErr
}

func (f *fakeRunner) Run() error {
	*f.trace = append(*f.trace, f.id)
	return f.runErr
}

func registerFake(t *testing.T, uses string, trace *[]string, validateErr, runErr error) {
	t.Helper()
	steprunner.RegisterRunnerFactory(uses, func(ctx types.ExecutionContext) (steprunner.StepRunner, error) {
		return &fakeRunner{
			id:          ctx.Step.ID,
			trace:       trace,
			validateErr: validateErr,
			runErr:      runErr,
		}, nil
	})
}

func TestEngine_ExecuteInOrder(t *testing.T) {
	var trace []string
	registerFake(t, "ok_a", &trace, nil, nil)
	registerFake(t, "ok_b", &trace, nil, nil)

	plan := []core.Step{
		{ID: "first", Uses: "ok_a"},
		{ID: "second", Uses: "ok_b"},
		{ID: "third", Uses: "ok_a"},
	}

	engine := core.NewEngine(zerolog.Nop())
	err := engine.Execute(plan, core.ExecutionContext{State: &core.State{}})

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, trace)
}

// The first failing step halts the sequence; no later step runs.
func TestEngine_FailFast(t *testing.T) {
	var trace []string
	registerFake(t, "ok", &trace, nil, nil)
	registerFake(t, "boom", &trace, nil, errors.New("tool exited 1"))

	plan := []core.Step{
		{ID: "verify", Uses: "boom"},
		{ID: "bump", Uses: "ok"},
		{ID: "push", Uses: "ok"},
	}

	engine := core.NewEngine(zerolog.Nop())
	err := engine.Execute(plan, core.ExecutionContext{State: &core.State{}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `step "verify" failed`)
	assert.Equal(t, []string{"verify"}, trace)
}

// Every runner in the plan is validated before the first step runs, so a
// misconfigured late step produces zero side effects.
func TestEngine_ValidatesWholePlanFirst(t *testing.T) {
	var trace []string
	registerFake(t, "valid", &trace, nil, nil)
	registerFake(t, "misconfigured", &trace, errors.New("missing image name"), nil)

	plan := []core.Step{
		{ID: "verify", Uses: "valid"},
		{ID: "image", Uses: "misconfigured"},
	}

	engine := core.NewEngine(zerolog.Nop())
	err := engine.Execute(plan, core.ExecutionContext{State: &core.State{}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `validating step "image"`)
	assert.Empty(t, trace)
}

func TestEngine_UnknownStepType(t *testing.T) {
	engine := core.NewEngine(zerolog.Nop())
	err := engine.Execute([]core.Step{{ID: "x", Uses: "does_not_exist"}}, core.ExecutionContext{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no runner registered")
}
