// Package scheduler provides cron-driven job scheduling: single-job
// lifecycle management and a registry for named sets of jobs.
package scheduler

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/watzon/quando/internal/cronexpr"
	"github.com/watzon/quando/internal/metrics"
)

// Status represents a job's lifecycle state.
type Status string

const (
	// StatusIdle is the initial and terminal state: no task is armed.
	StatusIdle Status = "idle"
	// StatusRunning means a delayed task is armed (or a retry is pending).
	StatusRunning Status = "running"
	// StatusPaused means the schedule is preserved but nothing is armed.
	StatusPaused Status = "paused"
)

// retryBackoff is the delay before re-searching when no matching instant
// exists within the search horizon. Absence of a match now does not imply
// permanent absence once time advances, so the job stays running and
// retries rather than stopping.
const retryBackoff = time.Hour

// Handler is the work a job performs on each firing. It takes no arguments
// and returns nothing; failures are surfaced by panicking, which the job
// recovers, logs, and counts without altering its own status.
type Handler func()

var (
	ErrEmptyName  = errors.New("job name must not be empty")
	ErrNilHandler = errors.New("job handler must not be nil")
)

// Job binds a name, a parsed schedule, and a handler to a small lifecycle
// state machine. The parsed schedule is immutable; all mutability is
// confined to the status and the pending timer, both guarded by a mutex so
// timer fires (which arrive on their own goroutine) and control calls stay
// consistent. At most one timer is pending per job at any time.
type Job struct {
	name     string
	schedule *cronexpr.Schedule
	handler  Handler

	mu         sync.Mutex
	status     Status
	timer      *time.Timer
	generation uint64
}

// NewJob parses the expression and constructs an idle job. Construction is
// atomic: any scan or parse error returns a nil job and the error, never a
// partially-built one.
func NewJob(name, expression string, handler Handler) (*Job, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if handler == nil {
		return nil, ErrNilHandler
	}

	schedule, err := cronexpr.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("creating job %q: %w", name, err)
	}

	return &Job{
		name:     name,
		schedule: schedule,
		handler:  handler,
		status:   StatusIdle,
	}, nil
}

// Name returns the job's name.
func (j *Job) Name() string {
	return j.name
}

// Source returns the schedule expression the job was created with.
func (j *Job) Source() string {
	return j.schedule.Source()
}

// Status returns the job's current lifecycle state.
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Matches reports whether an instant satisfies the job's schedule.
func (j *Job) Matches(t time.Time) bool {
	return j.schedule.Matches(t)
}

// NextRun returns the earliest matching instant at or after the given time,
// or false when nothing matches within the search horizon.
func (j *Job) NextRun(after time.Time) (time.Time, bool) {
	return j.schedule.Next(after)
}

// Start arms a delayed task for the next matching instant. It is a no-op
// while running (no duplicate tasks are armed) and while paused (use Resume).
func (j *Job) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.status != StatusIdle {
		return
	}
	j.status = StatusRunning
	j.armLocked()
}

// Pause cancels the pending task and preserves the schedule. No-op unless
// running. A handler already executing is never preempted; only the
// not-yet-fired task is cancelled.
func (j *Job) Pause() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.status != StatusRunning {
		return
	}
	j.status = StatusPaused
	j.disarmLocked()
}

// Resume re-computes the next run from the current time and re-arms.
// No-op unless paused.
func (j *Job) Resume() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.status != StatusPaused {
		return
	}
	j.status = StatusRunning
	j.armLocked()
}

// Stop cancels any pending task and returns the job to idle. No-op when
// already idle.
func (j *Job) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.status == StatusIdle {
		return
	}
	j.status = StatusIdle
	j.disarmLocked()
}

// armLocked schedules the next firing. When the horizon is exhausted the
// job stays running and retries after a fixed backoff instead of going
// idle. Each arm bumps the generation counter; a fire carrying a stale
// generation is no longer current and does nothing.
func (j *Job) armLocked() {
	j.generation++
	generation := j.generation

	now := time.Now()
	delay := retryBackoff
	next, ok := j.schedule.Next(now)
	if ok {
		delay = next.Sub(now)
		if delay < 0 {
			delay = 0
		}
		log.Debug().
			Str("job", j.name).
			Time("next_run", next).
			Msg("Job armed")
	} else {
		log.Warn().
			Str("job", j.name).
			Dur("retry_in", retryBackoff).
			Msg("No matching instant within search horizon, will retry")
	}

	j.timer = time.AfterFunc(delay, func() {
		j.fire(generation)
	})
}

func (j *Job) disarmLocked() {
	j.generation++
	if j.timer != nil {
		j.timer.Stop()
		j.timer = nil
	}
}

// fire runs on the timer's goroutine. It invokes the handler outside the
// lock, then re-arms if the job is still running and this fire is still
// current (Pause or Stop during the handler invalidates the generation).
func (j *Job) fire(generation uint64) {
	j.mu.Lock()
	if j.status != StatusRunning || generation != j.generation {
		j.mu.Unlock()
		return
	}
	j.timer = nil
	j.mu.Unlock()

	// The instant the timer armed for may not itself match (horizon-retry
	// firings, in particular, land on arbitrary instants). Skip the handler
	// in that case and just re-arm.
	if j.schedule.Matches(time.Now()) {
		j.run()
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.status != StatusRunning || generation != j.generation {
		return
	}
	j.armLocked()
}

// run invokes the handler once, logging and recording the outcome.
func (j *Job) run() {
	runID := uuid.NewString()
	started := time.Now()

	log.Debug().
		Str("job", j.name).
		Str("run_id", runID).
		Msg("Job firing")

	status := "ok"
	if err := j.invoke(); err != nil {
		status = "error"
		log.Error().
			Err(err).
			Str("job", j.name).
			Str("run_id", runID).
			Msg("Job handler failed")
	}
	metrics.RecordJobFiring(j.name, status, time.Since(started))
}

// invoke runs the handler, converting a panic into an error. Handler
// failures are isolated per invocation: they never change the job's status
// and never cancel future firings.
func (j *Job) invoke() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	j.handler()
	return nil
}
