package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMaxAttempts = 3
	DefaultBackoffBase = 5 * time.Second
	DefaultCleanLimit  = 1000
	DefaultCleanGrace  = 24 * time.Hour
)

var (
	ErrNotStarted = errors.New("queue is not started")
	ErrClosed     = errors.New("queue is closed")
)

// Handler executes one job. A returned error sends the job through the retry path.
type Handler func(ctx context.Context, job Job) error

type scheduleEntry struct {
	gocronID uuid.UUID
	pattern  string
	jobName  string
}

// Queue is a named single-worker job queue with an explicit job-state table.
// Jobs from the cron schedule and manual triggers land in the same FIFO and are
// processed strictly one at a time, so handler side effects never interleave.
type Queue struct {
	name        string
	handler     Handler
	maxAttempts int
	backoffBase time.Duration

	mu        sync.Mutex
	jobs      map[string]*Job
	waiting   []string
	timers    map[string]*time.Timer
	schedules map[string]scheduleEntry
	closed    bool

	wake  chan struct{}
	done  chan struct{}
	sched gocron.Scheduler
}

type Option func(*Queue)

func WithMaxAttempts(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.maxAttempts = n
		}
	}
}

func WithBackoffBase(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.backoffBase = d
		}
	}
}

func New(name string, handler Handler, opts ...Option) *Queue {
	q := &Queue{
		name:        name,
		handler:     handler,
		maxAttempts: DefaultMaxAttempts,
		backoffBase: DefaultBackoffBase,
		jobs:        make(map[string]*Job),
		timers:      make(map[string]*time.Timer),
		schedules:   make(map[string]scheduleEntry),
		wake:        make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Start launches the worker loop and the cron scheduler. Both stop when the
// provided context is canceled.
func (q *Queue) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return err
	}

	q.mu.Lock()
	q.sched = scheduler
	q.mu.Unlock()

	scheduler.Start()
	go q.run(ctx)

	// Stop queue when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := q.Shutdown(); sdErr != nil {
			logrus.Errorf("Queue %s shutdown error: %v", q.name, sdErr)
		}
	}()
	return nil
}

// Shutdown stops the scheduler and pending retry timers. In-flight job execution
// is not interrupted; the worker goroutine exits once its context is canceled.
func (q *Queue) Shutdown() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true

	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}

	if q.sched == nil {
		return nil
	}
	err := q.sched.Shutdown()
	q.sched = nil
	return err
}

// Enqueue adds one job to the tail of the queue and returns its recorded state.
func (q *Queue) Enqueue(name string) (Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return Job{}, ErrClosed
	}

	job := &Job{
		ID:          uuid.NewString(),
		Name:        name,
		Payload:     Payload{Timestamp: time.Now().UnixMilli()},
		State:       StateWaiting,
		MaxAttempts: q.maxAttempts,
		CreatedAt:   time.Now(),
	}
	q.jobs[job.ID] = job
	q.waiting = append(q.waiting, job.ID)
	q.wakeup()

	logrus.Infof("Job %s (%s) queued on %s", job.ID, job.Name, q.name)
	return *job, nil
}

// UpsertSchedule installs a recurring cron trigger that enqueues jobs named
// jobName. Re-registering the same schedule id replaces the previous trigger
// instead of duplicating it.
func (q *Queue) UpsertSchedule(id, cronPattern, jobName string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.sched == nil {
		return ErrNotStarted
	}

	if prev, ok := q.schedules[id]; ok {
		if err := q.sched.RemoveJob(prev.gocronID); err != nil {
			return err
		}
		delete(q.schedules, id)
	}

	cronJob, err := q.sched.NewJob(
		gocron.CronJob(cronPattern, true),
		gocron.NewTask(func() {
			if _, enqErr := q.Enqueue(jobName); enqErr != nil {
				logrus.WithError(enqErr).Errorf("Schedule %s failed to enqueue %s", id, jobName)
			}
		}),
		gocron.WithName(id),
	)
	if err != nil {
		return err
	}

	q.schedules[id] = scheduleEntry{gocronID: cronJob.ID(), pattern: cronPattern, jobName: jobName}
	return nil
}

// ScheduleCleanup installs a recurring trigger that drops completed and failed
// jobs older than grace from the state table.
func (q *Queue) ScheduleCleanup(cronPattern string, grace time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.sched == nil {
		return ErrNotStarted
	}

	_, err := q.sched.NewJob(
		gocron.CronJob(cronPattern, true),
		gocron.NewTask(func() {
			removed := q.Clean(grace, DefaultCleanLimit, StateCompleted)
			removed += q.Clean(grace, DefaultCleanLimit, StateFailed)
			logrus.Infof("Queue %s cleanup removed %d jobs", q.name, removed)
		}),
	)
	return err
}

// Clean removes finished jobs in the given terminal state older than grace,
// at most limit per call. Returns the number of removed jobs.
func (q *Queue) Clean(grace time.Duration, limit int, state State) int {
	if state != StateCompleted && state != StateFailed {
		return 0
	}
	cutoff := time.Now().Add(-grace)

	q.mu.Lock()
	defer q.mu.Unlock()

	removed := 0
	for id, job := range q.jobs {
		if removed >= limit {
			break
		}
		if job.State == state && !job.FinishedAt.IsZero() && job.FinishedAt.Before(cutoff) {
			delete(q.jobs, id)
			removed++
		}
	}
	return removed
}

type Counts struct {
	Waiting   int `json:"waiting"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Delayed   int `json:"delayed"`
}

type ScheduleInfo struct {
	ID      string    `json:"id"`
	Pattern string    `json:"pattern"`
	JobName string    `json:"jobName"`
	NextRun time.Time `json:"nextRun,omitzero"`
}

type Status struct {
	JobCounts Counts         `json:"jobCounts"`
	Schedules []ScheduleInfo `json:"schedulers"`
}

// Status reports job counts per state and the registered recurring schedules.
func (q *Queue) Status() Status {
	q.mu.Lock()
	defer q.mu.Unlock()

	var counts Counts
	for _, job := range q.jobs {
		switch job.State {
		case StateWaiting:
			counts.Waiting++
		case StateActive:
			counts.Active++
		case StateCompleted:
			counts.Completed++
		case StateFailed:
			counts.Failed++
		case StateDelayed:
			counts.Delayed++
		}
	}

	schedules := make([]ScheduleInfo, 0, len(q.schedules))
	for id, entry := range q.schedules {
		info := ScheduleInfo{ID: id, Pattern: entry.pattern, JobName: entry.jobName}
		if q.sched != nil {
			for _, cronJob := range q.sched.Jobs() {
				if cronJob.ID() == entry.gocronID {
					if next, err := cronJob.NextRun(); err == nil {
						info.NextRun = next
					}
					break
				}
			}
		}
		schedules = append(schedules, info)
	}

	return Status{JobCounts: counts, Schedules: schedules}
}

// Job returns a copy of the job with the given id.
func (q *Queue) Job(id string) (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	job, ok := q.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

func (q *Queue) run(ctx context.Context) {
	defer close(q.done)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job := q.dequeue()
		if job == nil {
			select {
			case <-ctx.Done():
				return
			case <-q.wake:
			}
			continue
		}
		q.process(ctx, job)
	}
}

// dequeue pops the head of the FIFO and marks it active.
func (q *Queue) dequeue() *Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.waiting) > 0 {
		id := q.waiting[0]
		q.waiting = q.waiting[1:]
		job, ok := q.jobs[id]
		if !ok {
			continue // cleaned up while waiting
		}
		job.State = StateActive
		job.Attempts++
		return job
	}
	return nil
}

func (q *Queue) process(ctx context.Context, job *Job) {
	logrus.Infof("Processing job %s (%s), attempt %d/%d", job.ID, job.Name, job.Attempts, job.MaxAttempts)

	err := q.handler(ctx, *job)

	q.mu.Lock()
	defer q.mu.Unlock()

	if err == nil {
		job.State = StateCompleted
		job.FinishedAt = time.Now()
		logrus.Infof("✅ Job %s (%s) completed", job.ID, job.Name)
		return
	}

	job.LastError = err.Error()
	if job.Attempts >= job.MaxAttempts {
		job.State = StateFailed
		job.FinishedAt = time.Now()
		logrus.WithError(err).Errorf("❌ Job %s (%s) failed terminally after %d attempts", job.ID, job.Name, job.Attempts)
		return
	}

	delay := q.backoffBase << (job.Attempts - 1)
	job.State = StateDelayed
	id := job.ID
	q.timers[id] = time.AfterFunc(delay, func() { q.requeue(id) })
	logrus.WithError(err).Warnf("Job %s (%s) failed, retrying in %s", job.ID, job.Name, delay)
}

// requeue moves a delayed job back to waiting once its backoff timer fires.
func (q *Queue) requeue(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.timers, id)
	if q.closed {
		return
	}
	job, ok := q.jobs[id]
	if !ok || job.State != StateDelayed {
		return
	}
	job.State = StateWaiting
	q.waiting = append(q.waiting, id)
	q.wakeup()
}

func (q *Queue) wakeup() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}
