package steprunner

import (
	"fmt"

	"github.com/arnavsurve/shipstep/pkg/types"
)

type RunnerFactory func(ctx types.ExecutionContext) (StepRunner, error)

// registry stores each step type's factory function. GetRunner calls the
// appropriate factory to yield a new instance of that StepRunner.
var registry = map[string]RunnerFactory{}

// RegisterRunnerFactory is called in each runner's init() function to
// register its factory with the registry.
func RegisterRunnerFactory(stepType string, factory RunnerFactory) {
	registry[stepType] = factory
}

// GetRunner returns an instance of the appropriate StepRunner based on the
// step's 'uses' field, resolving the factory from the registry.
func GetRunner(ctx types.ExecutionContext) (StepRunner, error) {
	stepType := ctx.Step.Uses
	factory, ok := registry[stepType]
	if !ok {
		return nil, fmt.Errorf("no runner registered for type: %s", stepType)
	}

	return factory(ctx)
}
