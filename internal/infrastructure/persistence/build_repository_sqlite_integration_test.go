//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/bensternthal/basket/internal/domain/pipeline"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuild(number int, state string) *pipeline.Build {
	now := time.Now()
	return &pipeline.Build{
		ID:     uuid.New().String(),
		Number: number,
		State:  state,
		Results: []pipeline.CommandResult{
			{Phase: pipeline.PhaseScript, Command: "go test ./...", ExitCode: 0, Output: "ok"},
		},
		StartedAt:  now.Add(-time.Minute),
		FinishedAt: now,
	}
}

func TestBuildRepository_LatestEmpty(t *testing.T) {
	tc := SetupTestDB(t)

	latest, err := tc.BuildRepo.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestBuildRepository_CreateAndLatest(t *testing.T) {
	tc := SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, tc.BuildRepo.Create(ctx, newTestBuild(1, pipeline.StateFailed)))
	require.NoError(t, tc.BuildRepo.Create(ctx, newTestBuild(2, pipeline.StatePassed)))

	latest, err := tc.BuildRepo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 2, latest.Number)
	assert.Equal(t, pipeline.StatePassed, latest.State)
	require.Len(t, latest.Results, 1)
	assert.Equal(t, pipeline.PhaseScript, latest.Results[0].Phase)
}

func TestBuildRepository_List(t *testing.T) {
	tc := SetupTestDB(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, tc.BuildRepo.Create(ctx, newTestBuild(i, pipeline.StatePassed)))
	}

	builds, err := tc.BuildRepo.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, builds, 3)
	assert.Equal(t, 5, builds[0].Number)
}

func TestBuildRepository_RejectsNonTerminalState(t *testing.T) {
	tc := SetupTestDB(t)

	bad := newTestBuild(1, "exploded")
	assert.Error(t, tc.BuildRepo.Create(context.Background(), bad))
}
