package pipeline

import (
	"context"
)

// BuildService runs the pipeline end to end: execute phases, persist the
// build, report coverage and notify.
type BuildService interface {
	// Run executes the configured pipeline once and returns the finished
	// build. The returned error reports runner-level problems only; a
	// failing command is expressed through the build state.
	Run(ctx context.Context) (*Build, error)
}

// StepRunner executes a single pipeline command and captures its outcome.
// An error is returned only when the command could not be started at all;
// a non-zero exit is a normal CommandResult.
type StepRunner interface {
	Run(ctx context.Context, phase Phase, command string) (*CommandResult, error)
}

// Notifier delivers a build status message to one sink.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// CoverageReporter uploads a coverage job to a tracking service.
type CoverageReporter interface {
	Report(ctx context.Context, job *CoverageJob) error
}

// BuildRepository defines storage operations for build history.
type BuildRepository interface {
	Create(ctx context.Context, build *Build) error
	// Latest returns the most recent finished build, or nil when no build
	// has been recorded yet.
	Latest(ctx context.Context) (*Build, error)
	List(ctx context.Context, limit int) ([]*Build, error)
}
