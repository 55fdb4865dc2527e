// Package execx runs external commands for pipeline steps. Output is
// captured and streamed line-by-line into the step's structured logger so
// tool output lands in the same sinks as everything else.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// Result holds the captured output and exit status of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

type options struct {
	dir    string
	env    map[string]string
	logger *zerolog.Logger
	label  string
}

// Option configures a single Run invocation.
type Option func(*options)

// WithDir sets the command working directory.
func WithDir(dir string) Option {
	return func(o *options) { o.dir = dir }
}

// WithEnv appends variables to the inherited environment.
func WithEnv(env map[string]string) Option {
	return func(o *options) { o.env = env }
}

// WithLogger streams the command's stdout/stderr lines to logger, labeled
// with the tool name.
func WithLogger(logger zerolog.Logger, label string) Option {
	return func(o *options) {
		o.logger = &logger
		o.label = label
	}
}

// Run executes argv and blocks until it exits. A non-zero exit status is
// returned as an error alongside the captured Result; the caller decides
// whether that aborts the run.
func Run(ctx context.Context, argv []string, opts ...Option) (*Result, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	// #nosec G204
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = o.dir
	if len(o.env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range o.env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	runErr := cmd.Run()

	res := &Result{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if o.logger != nil {
		logLines(res.Stderr, o.label, "STDERR", *o.logger)
		logLines(res.Stdout, o.label, "STDOUT", *o.logger)
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			if o.logger != nil {
				o.logger.Error().Int("exit_code", res.ExitCode).Msgf("%s exited with non-zero code", argv[0])
			}
			return res, fmt.Errorf("%s failed: %w", argv[0], runErr)
		}
		return res, fmt.Errorf("executing %s: %w", argv[0], runErr)
	}

	return res, nil
}

// logLines streams buffered tool output to a structured logger, one event
// per line.
func logLines(s, label, source string, logger zerolog.Logger) {
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		if line == "" {
			continue
		}
		logger.Info().
			Str("source", source).
			Str("tool", label).
			Str("tool_line", line).
			Msg("Tool output")
	}
}
