// Package runner executes pipeline commands through the local shell.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/bensternthal/basket/internal/domain/pipeline"
	"github.com/bensternthal/basket/internal/pkg/logger"
)

type shellRunner struct {
	shell  string
	dir    string
	logger logger.Logger
}

// NewShellRunner creates a pipeline.StepRunner that runs each command via
// `sh -c` in the given working directory. An empty dir means the current one.
func NewShellRunner(dir string, logger logger.Logger) (pipeline.StepRunner, error) {
	return &shellRunner{
		shell:  "/bin/sh",
		dir:    dir,
		logger: logger,
	}, nil
}

// Run executes one command and captures its combined output. A non-zero exit
// is reported through the result, not the error; the error is reserved for
// commands that could not run at all.
func (r *shellRunner) Run(ctx context.Context, phase pipeline.Phase, command string) (*pipeline.CommandResult, error) {
	r.logger.Info("[", phase, "] $ ", command)

	cmd := exec.CommandContext(ctx, r.shell, "-c", command)
	cmd.Dir = r.dir

	started := time.Now()
	output, err := cmd.CombinedOutput()
	duration := time.Since(started)

	result := &pipeline.CommandResult{
		Phase:    phase,
		Command:  command,
		Output:   string(output),
		Duration: duration,
	}

	if err != nil {
		// A cancelled context kills the process; report the abort rather
		// than the resulting signal exit.
		if ctx.Err() != nil {
			return nil, fmt.Errorf("command aborted: %w", ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("failed to run command %q: %w", command, err)
	}

	return result, nil
}
