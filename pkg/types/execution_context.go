package types

import "github.com/rs/zerolog"

// ExecutionContext contains everything a step runner needs to execute.
type ExecutionContext struct {
	Step       Step
	Logger     zerolog.Logger
	Project    *Project
	ProjectDir string
	State      *State
}
