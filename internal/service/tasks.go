package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pageza/nutrilog/backend/internal/types"
)

// TaskFunc is the body of a background task. Its result is exposed as the
// task result on success.
type TaskFunc func(ctx context.Context) (any, error)

type task struct {
	resp types.TaskResponse
	done chan struct{}
}

// TaskRunner runs AI operations in the background. Only one task per kind
// may be pending; a finished task stays readable until the next task of the
// same kind replaces it.
type TaskRunner struct {
	mu     sync.Mutex
	tasks  map[string]*task
	latest map[types.TaskKind]string

	timeout time.Duration
	logger  zerolog.Logger
	clock   func() time.Time

	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ ITaskRunner = (*TaskRunner)(nil)

// NewTaskRunner creates a runner whose tasks each get timeout to finish.
// A zero timeout means no limit.
func NewTaskRunner(timeout time.Duration, logger zerolog.Logger) *TaskRunner {
	base, cancel := context.WithCancel(context.Background())
	return &TaskRunner{
		tasks:   make(map[string]*task),
		latest:  make(map[types.TaskKind]string),
		timeout: timeout,
		logger:  logger.With().Str("component", "tasks").Logger(),
		clock:   time.Now,
		base:    base,
		cancel:  cancel,
	}
}

// Start launches fn as a task of kind. It fails with ErrTaskInFlight while
// another task of the same kind is pending.
func (r *TaskRunner) Start(kind types.TaskKind, fn TaskFunc) (*types.TaskResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.latest[kind]; ok {
		if prev := r.tasks[id]; prev != nil && prev.resp.Status == types.TaskPending {
			return nil, fmt.Errorf("%w: %s", ErrTaskInFlight, kind)
		}
		delete(r.tasks, id)
	}

	t := &task{
		resp: types.TaskResponse{
			ID:        uuid.NewString(),
			Kind:      kind,
			Status:    types.TaskPending,
			CreatedAt: r.clock().UTC(),
		},
		done: make(chan struct{}),
	}
	r.tasks[t.resp.ID] = t
	r.latest[kind] = t.resp.ID

	r.wg.Add(1)
	go r.run(t, fn)

	resp := t.resp
	return &resp, nil
}

func (r *TaskRunner) run(t *task, fn TaskFunc) {
	defer r.wg.Done()

	ctx := r.base
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	logger := r.logger.With().Str("task_id", t.resp.ID).Str("kind", string(t.resp.Kind)).Logger()
	start := r.clock()

	var (
		result any
		err    error
	)
	func() {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("task panicked: %v", p)
			}
		}()
		result, err = fn(ctx)
	}()

	r.mu.Lock()
	finished := r.clock().UTC()
	t.resp.FinishedAt = &finished
	if err != nil {
		t.resp.Status = types.TaskFailed
		t.resp.Error = FailureMessage(t.resp.Kind)
	} else {
		t.resp.Status = types.TaskSucceeded
		t.resp.Result = result
	}
	close(t.done)
	r.mu.Unlock()

	if err != nil {
		logger.Error().Err(err).Dur("duration", finished.Sub(start)).Msg("task failed")
		return
	}
	logger.Info().Dur("duration", finished.Sub(start)).Msg("task succeeded")
}

// Get returns the current state of a task.
func (r *TaskRunner) Get(id string) (*types.TaskResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	resp := t.resp
	return &resp, nil
}

// Wait blocks until the task finishes or ctx is done.
func (r *TaskRunner) Wait(ctx context.Context, id string) (*types.TaskResponse, error) {
	r.mu.Lock()
	t, ok := r.tasks[id]
	r.mu.Unlock()
	if !ok {
		return nil, ErrTaskNotFound
	}

	select {
	case <-t.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	resp := t.resp
	return &resp, nil
}

// Shutdown waits for running tasks. When ctx ends first the tasks are
// cancelled and ctx's error is returned.
func (r *TaskRunner) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.cancel()
		return nil
	case <-ctx.Done():
		r.cancel()
		<-done
		return ctx.Err()
	}
}
