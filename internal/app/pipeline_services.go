package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bensternthal/basket/internal/domain/pipeline"
	"github.com/bensternthal/basket/internal/pkg/config"
	"github.com/bensternthal/basket/internal/pkg/logger"
	"github.com/google/uuid"
)

// CoverageCollector produces the coverage payload of a passed build, e.g. by
// parsing the profile the test phase wrote.
type CoverageCollector func(ctx context.Context) (*pipeline.CoverageJob, error)

// notifyTimeout bounds status delivery to a single sink. The build is already
// recorded by the time notifiers run.
const notifyTimeout = 30 * time.Second

// buildService implements the BuildService interface: it runs the pipeline
// phases in order, records the build and handles coverage and notification.
type buildService struct {
	settings  *config.PipelineSettings
	runner    pipeline.StepRunner
	builds    pipeline.BuildRepository
	notifiers []pipeline.Notifier
	reporter  pipeline.CoverageReporter
	collector CoverageCollector
	logger    logger.Logger
}

// NewBuildService creates a new instance of BuildService. Reporter and
// collector may be nil when no coverage tracking is configured.
func NewBuildService(
	settings *config.PipelineSettings,
	runner pipeline.StepRunner,
	builds pipeline.BuildRepository,
	notifiers []pipeline.Notifier,
	reporter pipeline.CoverageReporter,
	collector CoverageCollector,
	logger logger.Logger,
) (pipeline.BuildService, error) {
	if settings == nil {
		return nil, fmt.Errorf("pipeline settings are required")
	}

	return &buildService{
		settings:  settings,
		runner:    runner,
		builds:    builds,
		notifiers: notifiers,
		reporter:  reporter,
		collector: collector,
		logger:    logger,
	}, nil
}

// Run executes the configured pipeline once. The build row is written exactly
// once, with its terminal state; coverage and notification happen after that
// and cannot change the outcome.
func (s *buildService) Run(ctx context.Context) (*pipeline.Build, error) {
	previous, err := s.builds.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous build: %w", err)
	}

	number := 1
	if previous != nil {
		number = previous.Number + 1
	}

	build := &pipeline.Build{
		ID:        uuid.New().String(),
		Number:    number,
		State:     pipeline.StateRunning,
		StartedAt: time.Now(),
	}
	s.logger.Info("Build #", build.Number, " started")

	state, err := s.runPhases(ctx, build)
	if err != nil {
		return nil, err
	}
	build.State = state
	build.FinishedAt = time.Now()

	if err := s.builds.Create(ctx, build); err != nil {
		return nil, fmt.Errorf("failed to persist build: %w", err)
	}
	s.logger.Info("Build #", build.Number, " ", build.State, " in ", build.Duration().Round(time.Millisecond))

	if build.Passed() {
		s.reportCoverage(ctx)
	}
	s.notify(ctx, build, previous)

	return build, nil
}

// runPhases executes the phases strictly in order and returns the terminal
// state. A failure in a setup phase errors the build; only a script failure
// fails it.
func (s *buildService) runPhases(ctx context.Context, build *pipeline.Build) (string, error) {
	phases := []struct {
		phase    pipeline.Phase
		commands config.CommandList
		onFail   string
	}{
		{pipeline.PhaseBeforeInstall, s.settings.BeforeInstall, pipeline.StateErrored},
		{pipeline.PhaseInstall, s.settings.Install, pipeline.StateErrored},
		{pipeline.PhaseBeforeScript, s.settings.BeforeScript, pipeline.StateErrored},
		{pipeline.PhaseScript, s.settings.Script, pipeline.StateFailed},
	}

	for _, p := range phases {
		for _, command := range p.commands {
			result, err := s.runner.Run(ctx, p.phase, command)
			if err != nil {
				return "", fmt.Errorf("failed to run %s command: %w", p.phase, err)
			}
			build.Results = append(build.Results, *result)
			if result.ExitCode != 0 {
				s.logger.Error(string(p.phase), " command exited with ", result.ExitCode, ": ", command)
				return p.onFail, nil
			}
		}
	}

	// after_success cannot change the outcome
	for _, command := range s.settings.AfterSuccess {
		result, err := s.runner.Run(ctx, pipeline.PhaseAfterSuccess, command)
		if err != nil {
			s.logger.Error("Failed to run after_success command: ", err)
			break
		}
		build.Results = append(build.Results, *result)
		if result.ExitCode != 0 {
			s.logger.Warn("after_success command exited with ", result.ExitCode, ": ", command)
		}
	}

	return pipeline.StatePassed, nil
}

func (s *buildService) reportCoverage(ctx context.Context) {
	if s.reporter == nil || s.collector == nil {
		return
	}

	job, err := s.collector(ctx)
	if err != nil {
		s.logger.Error("Failed to collect coverage: ", err)
		return
	}
	if err := s.reporter.Report(ctx, job); err != nil {
		s.logger.Error("Failed to report coverage: ", err)
	}
}

// notify delivers the build status to every configured sink when the policy
// for the outcome says so.
func (s *buildService) notify(ctx context.Context, build, previous *pipeline.Build) {
	if len(s.notifiers) == 0 || s.settings.Notifications == nil || s.settings.Notifications.IRC == nil {
		return
	}

	irc := s.settings.Notifications.IRC
	policy := irc.FailurePolicy()
	if build.Passed() {
		policy = irc.SuccessPolicy()
	}

	// A first build counts as a change: there is no previous state to match
	changed := previous == nil || previous.Passed() != build.Passed()
	if !shouldNotify(policy, changed) {
		return
	}

	message := fmt.Sprintf("build #%d %s in %s", build.Number, build.State, build.Duration().Round(time.Second))
	for _, notifier := range s.notifiers {
		notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
		if err := notifier.Notify(notifyCtx, message); err != nil {
			s.logger.Error("Failed to deliver build notification: ", err)
		}
		cancel()
	}
}

func shouldNotify(policy string, changed bool) bool {
	switch policy {
	case config.NotifyAlways:
		return true
	case config.NotifyNever:
		return false
	default:
		return changed
	}
}
