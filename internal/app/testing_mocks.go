//go:build unit
// +build unit

package app

import (
	"context"

	"github.com/bensternthal/basket/internal/domain/pipeline"
	"github.com/stretchr/testify/mock"
)

// MockStepRunner is a mock implementation of StepRunner
type MockStepRunner struct {
	mock.Mock
}

func (m *MockStepRunner) Run(ctx context.Context, phase pipeline.Phase, command string) (*pipeline.CommandResult, error) {
	args := m.Called(ctx, phase, command)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.CommandResult), args.Error(1)
}

// MockBuildRepository is a mock implementation of BuildRepository
type MockBuildRepository struct {
	mock.Mock
}

func (m *MockBuildRepository) Create(ctx context.Context, build *pipeline.Build) error {
	args := m.Called(ctx, build)
	return args.Error(0)
}

func (m *MockBuildRepository) Latest(ctx context.Context) (*pipeline.Build, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Build), args.Error(1)
}

func (m *MockBuildRepository) List(ctx context.Context, limit int) ([]*pipeline.Build, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pipeline.Build), args.Error(1)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// MockCoverageReporter is a mock implementation of CoverageReporter
type MockCoverageReporter struct {
	mock.Mock
}

func (m *MockCoverageReporter) Report(ctx context.Context, job *pipeline.CoverageJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
