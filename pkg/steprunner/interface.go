package steprunner

// StepRunner executes one release step. Validate is called for every step
// in a plan before any step runs, so configuration problems surface before
// the pipeline has side effects.
type StepRunner interface {
	Validate() error
	Run() error
}
