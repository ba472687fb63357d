//go:build unit
// +build unit

package tasks

import (
	"context"
	"sync"
	"testing"

	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/bensternthal/basket/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecutor struct {
	mu   sync.Mutex
	jobs []*Job
}

func (e *recordingExecutor) Execute(_ context.Context, job *Job) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.jobs = append(e.jobs, job)
	return nil
}

func (e *recordingExecutor) recorded() []*Job {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Job(nil), e.jobs...)
}

func TestDispatcher_ExecutesQueuedJobs(t *testing.T) {
	log := testutil.SetupTestLogger(t)
	exec := &recordingExecutor{}

	d, err := NewDispatcher(2, 16, exec, log)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, d.DispatchUserUpdate(ctx, &news.UserUpdateTask{
		Email: "dude@example.com",
		Token: "token-1",
		Mode:  news.ModeSubscribe,
	}))
	require.NoError(t, d.DispatchRecoveryMessage(ctx, "dude@example.com"))
	require.NoError(t, d.DispatchSMS(ctx, &news.SMSTask{MobileNumber: "5558675309", MessageName: "SMS_Android"}))

	d.Stop()

	jobs := exec.recorded()
	require.Len(t, jobs, 3)

	kinds := map[Kind]bool{}
	for _, job := range jobs {
		kinds[job.Kind] = true
	}
	assert.True(t, kinds[KindUserUpdate])
	assert.True(t, kinds[KindRecoveryMessage])
	assert.True(t, kinds[KindSMS])
}

func TestDispatcher_RejectsAfterStop(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	d, err := NewDispatcher(1, 1, &recordingExecutor{}, log)
	require.NoError(t, err)

	d.Stop()
	// Stop is idempotent
	d.Stop()

	err = d.DispatchRecoveryMessage(context.Background(), "dude@example.com")
	assert.Error(t, err)
}

func TestNewDispatcher_RejectsBadSizes(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	_, err := NewDispatcher(0, 1, &recordingExecutor{}, log)
	assert.Error(t, err)

	_, err = NewDispatcher(1, 0, &recordingExecutor{}, log)
	assert.Error(t, err)
}
