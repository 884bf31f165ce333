package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/ghostwallet/hunter/internal/domain/model"
	"github.com/ghostwallet/hunter/internal/domain/queue"
	"github.com/ghostwallet/hunter/internal/observability/metrics"
	"github.com/ghostwallet/hunter/internal/observability/statsd"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultMaxRetries is the retry budget applied when the config leaves it unset.
const DefaultMaxRetries = 3

// HandlerFunc executes one job's unit of work and returns its structured
// result. Handlers never see or manage retries; any error they return is
// caught at the worker boundary and routed through the engine's retry logic.
type HandlerFunc func(ctx context.Context, job *model.Job) (*model.AnalysisResult, error)

// EngineConfig carries the tunables for a batch run.
type EngineConfig struct {
	// MaxConcurrent is the number of workers draining the queue. Minimum 1.
	MaxConcurrent int
	// RateLimitInterval is the minimum spacing between consecutive unit-of-work
	// executions on the same worker lane. Zero disables throttling.
	RateLimitInterval time.Duration
	// MaxRetries is the attempt budget per job. Zero means DefaultMaxRetries.
	MaxRetries int
}

// EngineOptions groups dependencies for NewEngine.
type EngineOptions struct {
	Handlers map[model.JobKind]HandlerFunc // Required: kind dispatch table
	Config   EngineConfig                  // Required: concurrency/retry tunables
	Logger   *slog.Logger                  // Optional: structured logger
	Metrics  statsd.Sink                   // Optional: lifecycle metrics sink
	Clock    Clock                         // Optional: defaults to the system clock
}

// Engine owns the priority queue, the bounded worker pool, and the job-state
// bookkeeping for one in-process batch at a time.
//
// Jobs move queued→processing→{completed|failed}, with failures below the
// retry budget re-entering the queue at their original priority. At any
// instant every submitted job sits in exactly one of the queue, the active
// map, or the completed/failed collections.
type Engine struct {
	handlers map[model.JobKind]HandlerFunc
	queue    *queue.PriorityQueue
	logger   *slog.Logger
	metrics  statsd.Sink
	clock    Clock

	maxConcurrent int
	interval      time.Duration
	maxRetries    int

	mu             sync.Mutex
	jobs           map[string]*model.Job
	active         map[string]*model.Job
	completed      []*model.Job
	failed         []*model.Job
	totalProcessed int
	totalFailed    int
	startTime      time.Time
	running        bool
}

// NewEngine constructs a new Engine.
func NewEngine(opts EngineOptions) (*Engine, error) {
	if len(opts.Handlers) == 0 {
		return nil, errors.New("at least one kind handler is required")
	}

	cfg := opts.Config
	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	if cfg.RateLimitInterval < 0 {
		cfg.RateLimitInterval = 0
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}

	clock := opts.Clock
	if clock == nil {
		clock = SystemClock()
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "engine")
	}

	return &Engine{
		handlers:      opts.Handlers,
		queue:         queue.NewPriorityQueue(),
		logger:        logger,
		metrics:       opts.Metrics,
		clock:         clock,
		maxConcurrent: cfg.MaxConcurrent,
		interval:      cfg.RateLimitInterval,
		maxRetries:    cfg.MaxRetries,
		jobs:          make(map[string]*model.Job),
		active:        make(map[string]*model.Job),
		startTime:     clock.Now(),
	}, nil
}

// MustNewEngine constructs a new Engine and panics on error.
// Use this when you're certain the options are valid (e.g., in main.go).
func MustNewEngine(opts EngineOptions) *Engine {
	engine, err := NewEngine(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create Engine: %v", err))
	}
	return engine
}

// Submit enqueues a new job and returns its assigned id. It never blocks.
// Beyond a non-empty target nothing is validated here: malformed addresses
// and unknown kinds are accepted and surface as worker-time failures.
func (e *Engine) Submit(req model.SubmitRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("validate request: %w", err)
	}

	job := &model.Job{
		ID:        uuid.NewString(),
		Target:    req.Target,
		Kind:      req.Kind,
		Status:    model.JobStatusQueued,
		Priority:  req.Priority,
		CreatedAt: e.clock.Now(),
	}

	e.mu.Lock()
	e.jobs[job.ID] = job
	e.queue.Push(job)
	e.mu.Unlock()

	if e.logger != nil {
		e.logger.Debug("job submitted", "id", job.ID, "kind", job.Kind, "priority", job.Priority)
	}
	return job.ID, nil
}

// Run drains the queue with up to MaxConcurrent workers and returns once the
// queue is empty and every worker has exited. It processes one finite batch
// per invocation rather than looping as a daemon; jobs submitted while a run
// is in flight join the current batch.
//
// Cancelling ctx stops the batch early: jobs whose unit of work has not yet
// begun go back to the queue unstarted, while in-flight external calls
// surface the cancellation as an ordinary handler failure.
func (e *Engine) Run(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return errors.New("run already in progress")
	}
	e.running = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	if e.logger != nil {
		e.logger.InfoContext(ctx, "starting batch run",
			"workers", e.maxConcurrent,
			"rate_interval", e.interval,
			"queued", e.queue.Len(),
		)
	}

	group, gctx := errgroup.WithContext(ctx)
	for lane := range e.maxConcurrent {
		group.Go(func() error { return e.runWorkerLoop(gctx, lane) })
	}
	if err := group.Wait(); err != nil {
		return err
	}

	report := e.Status()
	metrics.EmitBatchSummary(e.metrics, report)
	if e.logger != nil {
		e.logger.InfoContext(ctx, "batch drained",
			"completed", report.Completed,
			"failed", report.Failed,
			"elapsed_seconds", report.ElapsedSeconds,
		)
	}
	return nil
}

// runWorkerLoop implements one worker lane: dequeue, wait out the lane's rate
// limiter, execute, settle, repeat until the queue is empty.
func (e *Engine) runWorkerLoop(ctx context.Context, lane int) error {
	limiter := e.newLaneLimiter()

	for {
		job, err := e.nextForProcessing()
		if errors.Is(err, model.ErrQueueEmpty) {
			return nil
		}
		if err != nil {
			return err
		}

		if waitErr := limiter.Wait(ctx); waitErr != nil {
			// The unit of work never began, so the attempt doesn't count.
			e.requeueUnstarted(job)
			return waitErr
		}

		e.execute(ctx, job, lane)
	}
}

// nextForProcessing atomically moves the highest-priority job from the queue
// into the active set and marks the attempt started.
func (e *Engine) nextForProcessing() (*model.Job, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	job, err := e.queue.Pop()
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	job.Status = model.JobStatusProcessing
	job.StartedAt = &now
	e.active[job.ID] = job
	return job, nil
}

// execute runs the job's handler without holding the engine lock, then routes
// the outcome. The lock is only ever held for the bookkeeping on either side
// of the external call, never across it.
func (e *Engine) execute(ctx context.Context, job *model.Job, lane int) {
	handler, ok := e.handlers[job.Kind]

	started := e.clock.Now()
	var result *model.AnalysisResult
	var err error
	if !ok {
		err = fmt.Errorf("no handler registered for kind %q", job.Kind)
	} else {
		result, err = e.runHandler(ctx, handler, job)
	}
	duration := e.clock.Now().Sub(started)

	e.settle(settleInput{
		Job:      job,
		Result:   result,
		Err:      err,
		Duration: duration,
		Lane:     lane,
	})
}

// runHandler invokes the handler with panic recovery so an unexpected panic
// in analysis code is escalated as an ordinary job failure.
func (e *Engine) runHandler(
	ctx context.Context,
	handler HandlerFunc,
	job *model.Job,
) (result *model.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(ctx, job)
}

// settleInput groups the outcome of one attempt to keep param count ≤3.
type settleInput struct {
	Job      *model.Job
	Result   *model.AnalysisResult
	Err      error
	Duration time.Duration
	Lane     int
}

// settle removes the job from the active set and routes the outcome: success
// to completed, retryable failure back to the queue at its original priority,
// exhausted failure to the terminal failed set. Counters only change here,
// under the lock.
func (e *Engine) settle(in settleInput) {
	job := in.Job

	e.mu.Lock()
	now := e.clock.Now()
	job.ProcessingDuration = in.Duration
	delete(e.active, job.ID)

	var transition string
	switch {
	case in.Err == nil:
		job.Status = model.JobStatusCompleted
		job.CompletedAt = &now
		job.Result = in.Result
		job.LastError = nil
		e.completed = append(e.completed, job)
		e.totalProcessed++
		transition = "completed"

	default:
		msg := in.Err.Error()
		job.LastError = &msg
		job.RetryCount++
		if job.RetryCount < e.maxRetries {
			job.Status = model.JobStatusQueued
			job.StartedAt = nil
			e.queue.Push(job)
			transition = "retried"
		} else {
			job.Status = model.JobStatusFailed
			job.CompletedAt = &now
			e.failed = append(e.failed, job)
			e.totalFailed++
			transition = "failed"
		}
	}
	retries := job.RetryCount
	e.mu.Unlock()

	result := metrics.ResultSuccess
	if in.Err != nil {
		result = metrics.ResultError
	}
	metrics.EmitJobLifecycle(e.metrics, metrics.JobMetric{
		Kind:       string(job.Kind),
		Transition: transition,
		Result:     result,
		Duration:   in.Duration,
		Err:        in.Err,
	})

	if e.logger == nil {
		return
	}
	switch transition {
	case "completed":
		e.logger.Debug("job completed", "id", job.ID, "kind", job.Kind, "lane", in.Lane, "duration", in.Duration)
	case "retried":
		e.logger.Info("job failed, requeued",
			"id", job.ID, "kind", job.Kind, "lane", in.Lane, "retry_count", retries, "error", in.Err)
	case "failed":
		e.logger.Warn("job failed terminally",
			"id", job.ID, "kind", job.Kind, "lane", in.Lane, "retry_count", retries, "error", in.Err)
	}
}

// requeueUnstarted returns a dequeued job to the queue after a shutdown beat
// it to its unit of work. The aborted attempt doesn't touch the retry count.
func (e *Engine) requeueUnstarted(job *model.Job) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.active, job.ID)
	job.Status = model.JobStatusQueued
	job.StartedAt = nil
	e.queue.Push(job)
}

// newLaneLimiter builds the per-worker rate limiter. Each lane owns its own
// limiter, so the minimum spacing applies per worker rather than across the
// pool and overall throughput stays near MaxConcurrent/interval.
func (e *Engine) newLaneLimiter() *rate.Limiter {
	if e.interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(e.interval), 1)
}

// Status derives a point-in-time snapshot of the batch. It never mutates
// state and is safe to call concurrently with Run.
func (e *Engine) Status() model.StatusReport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statusLocked()
}

func (e *Engine) statusLocked() model.StatusReport {
	report := model.StatusReport{
		Queued:    e.queue.Len(),
		Active:    len(e.active),
		Completed: len(e.completed),
		Failed:    len(e.failed),
	}
	report.TotalJobs = report.Queued + report.Active + report.Completed + report.Failed
	report.ElapsedSeconds = e.clock.Now().Sub(e.startTime).Seconds()
	report.ProcessingRate = float64(e.totalProcessed) / math.Max(report.ElapsedSeconds, 1)
	report.SuccessRate = float64(e.totalProcessed) /
		math.Max(float64(e.totalProcessed+e.totalFailed), 1)
	return report
}

// Report serializes the full job list and the status snapshot for the
// reporting sink. Jobs are ordered by submission time for stable output.
func (e *Engine) Report() *model.BatchReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	report := &model.BatchReport{
		ID:        uuid.NewString(),
		CreatedAt: e.clock.Now(),
		Status:    e.statusLocked(),
		Jobs:      make([]model.ReportJob, 0, len(e.jobs)),
	}

	for _, job := range e.jobs {
		row := model.ReportJob{
			JobID:        job.ID,
			Target:       job.Target,
			Kind:         job.Kind,
			Priority:     job.Priority,
			Status:       job.Status,
			RetryCount:   job.RetryCount,
			ProcessingMS: job.ProcessingDuration.Milliseconds(),
		}
		if job.LastError != nil {
			msg := *job.LastError
			row.LastError = &msg
		}
		report.Jobs = append(report.Jobs, row)
	}

	sort.Slice(report.Jobs, func(i, j int) bool {
		a, b := e.jobs[report.Jobs[i].JobID], e.jobs[report.Jobs[j].JobID]
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return report
}

// Job returns a copy of the job with the given id, if it was ever submitted.
func (e *Engine) Job(id string) (model.Job, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	job, ok := e.jobs[id]
	if !ok {
		return model.Job{}, false
	}
	return *job, true
}

// CompletedJobs returns copies of the jobs that finished successfully, in
// completion order.
func (e *Engine) CompletedJobs() []model.Job {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyJobs(e.completed)
}

// FailedJobs returns copies of the jobs that exhausted their retry budget,
// in failure order.
func (e *Engine) FailedJobs() []model.Job {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyJobs(e.failed)
}

func copyJobs(jobs []*model.Job) []model.Job {
	out := make([]model.Job, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, *job)
	}
	return out
}
