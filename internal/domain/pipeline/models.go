package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// CommandResult records the outcome of one command of one phase.
type CommandResult struct {
	Phase    Phase
	Command  string
	ExitCode int
	Output   string
	Duration time.Duration
}

// Build is a single pipeline execution. Builds are numbered sequentially;
// the previous build's state drives the "on change" notification policy.
type Build struct {
	ID         string `validate:"required,uuid4"`
	Number     int    `validate:"required,min=1"`
	State      string `validate:"required,oneof=pending running passed failed errored"`
	Results    []CommandResult
	StartedAt  time.Time
	FinishedAt time.Time
}

// Validate for validating Build struct
func (b *Build) Validate() error {
	validate := validator.New()

	err := validate.Struct(b)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// Passed reports whether the build reached a passing terminal state.
func (b *Build) Passed() bool {
	return b.State == StatePassed
}

// Finished reports whether the build reached any terminal state.
func (b *Build) Finished() bool {
	switch b.State {
	case StatePassed, StateFailed, StateErrored:
		return true
	}
	return false
}

// Duration returns the wall-clock time of a finished build.
func (b *Build) Duration() time.Duration {
	if b.FinishedAt.IsZero() {
		return 0
	}
	return b.FinishedAt.Sub(b.StartedAt)
}

// SourceFile is per-file coverage data of a coverage job.
type SourceFile struct {
	Name string `json:"name"`
	// Coverage holds hits per line; nil marks a non-executable line.
	Coverage []*int `json:"coverage"`
}

// CoverageJob is the payload uploaded to the coverage-tracking service
// after a passed build.
type CoverageJob struct {
	RepoToken    string        `json:"repo_token"`
	ServiceName  string        `json:"service_name"`
	ServiceJobID string        `json:"service_job_id,omitempty"`
	SourceFiles  []*SourceFile `json:"source_files"`
}
