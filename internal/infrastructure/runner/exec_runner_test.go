//go:build unit
// +build unit

package runner

import (
	"context"
	"testing"
	"time"

	"github.com/bensternthal/basket/internal/domain/pipeline"
	"github.com/bensternthal/basket/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellRunner_Success(t *testing.T) {
	r, err := NewShellRunner("", testutil.SetupTestLogger(t))
	require.NoError(t, err)

	result, err := r.Run(context.Background(), pipeline.PhaseScript, "echo hello")
	require.NoError(t, err)

	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, pipeline.PhaseScript, result.Phase)
	assert.Contains(t, result.Output, "hello")
	assert.Greater(t, result.Duration, time.Duration(0))
}

func TestShellRunner_NonZeroExit(t *testing.T) {
	r, err := NewShellRunner("", testutil.SetupTestLogger(t))
	require.NoError(t, err)

	result, err := r.Run(context.Background(), pipeline.PhaseScript, "exit 3")
	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitCode)
}

func TestShellRunner_ContextCancelled(t *testing.T) {
	r, err := NewShellRunner("", testutil.SetupTestLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = r.Run(ctx, pipeline.PhaseScript, "sleep 5")
	assert.Error(t, err)
}
