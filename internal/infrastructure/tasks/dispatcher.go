// Package tasks provides the in-process worker pool behind the
// news.TaskDispatcher contract. API handlers must never block on vendor
// synchronization or message delivery, so jobs are queued and drained by a
// fixed set of workers.
package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/bensternthal/basket/internal/pkg/logger"
)

// Kind identifies the type of a queued job.
type Kind string

// Job kinds.
const (
	KindUserUpdate      Kind = "user_update"
	KindRecoveryMessage Kind = "recovery_message"
	KindSMS             Kind = "sms"
)

// Job is one unit of background work. Exactly one payload field is set,
// matching Kind.
type Job struct {
	Kind       Kind
	UserUpdate *news.UserUpdateTask
	Email      string
	SMS        *news.SMSTask
}

// Executor performs the actual work of a job: talking to the email vendor,
// sending recovery mail, sending SMS. Implementations must be safe for
// concurrent use.
type Executor interface {
	Execute(ctx context.Context, job *Job) error
}

// Dispatcher is a bounded worker pool implementing news.TaskDispatcher.
type Dispatcher struct {
	executor Executor
	logger   logger.Logger
	jobs     chan *Job
	wg       sync.WaitGroup

	mu      sync.Mutex
	stopped bool
}

// NewDispatcher creates a dispatcher with the given number of workers and
// queue capacity.
func NewDispatcher(workers, queueSize int, executor Executor, logger logger.Logger) (*Dispatcher, error) {
	if workers < 1 {
		return nil, fmt.Errorf("worker count must be at least 1, got %d", workers)
	}
	if queueSize < 1 {
		return nil, fmt.Errorf("queue size must be at least 1, got %d", queueSize)
	}

	d := &Dispatcher{
		executor: executor,
		logger:   logger,
		jobs:     make(chan *Job, queueSize),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d, nil
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for job := range d.jobs {
		// Jobs run detached from the request that queued them
		if err := d.executor.Execute(context.Background(), job); err != nil {
			d.logger.Error("Task ", job.Kind, " failed: ", err)
		}
	}
}

// Stop drains the queue and waits for in-flight jobs to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) enqueue(ctx context.Context, job *Job) error {
	// The lock is held across the send so Stop cannot close the channel
	// under a blocked enqueue.
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return fmt.Errorf("dispatcher is stopped")
	}

	select {
	case d.jobs <- job:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to enqueue %s task: %w", job.Kind, ctx.Err())
	}
}

// DispatchUserUpdate queues a vendor synchronization job.
func (d *Dispatcher) DispatchUserUpdate(ctx context.Context, task *news.UserUpdateTask) error {
	return d.enqueue(ctx, &Job{Kind: KindUserUpdate, UserUpdate: task})
}

// DispatchRecoveryMessage queues a recovery email job.
func (d *Dispatcher) DispatchRecoveryMessage(ctx context.Context, email string) error {
	return d.enqueue(ctx, &Job{Kind: KindRecoveryMessage, Email: email})
}

// DispatchSMS queues an SMS subscription job.
func (d *Dispatcher) DispatchSMS(ctx context.Context, task *news.SMSTask) error {
	return d.enqueue(ctx, &Job{Kind: KindSMS, SMS: task})
}

// LoggingExecutor records jobs in the log without side effects. It stands in
// for the vendor-facing executor in deployments that have no vendor wired up.
type LoggingExecutor struct {
	Logger logger.Logger
}

// Execute logs the job and returns.
func (e *LoggingExecutor) Execute(_ context.Context, job *Job) error {
	switch job.Kind {
	case KindUserUpdate:
		e.Logger.Info("User update task: mode=", job.UserUpdate.Mode, " token=", job.UserUpdate.Token)
	case KindRecoveryMessage:
		e.Logger.Info("Recovery message task for ", job.Email)
	case KindSMS:
		e.Logger.Info("SMS task: message=", job.SMS.MessageName)
	default:
		return fmt.Errorf("unknown task kind: %s", job.Kind)
	}
	return nil
}
