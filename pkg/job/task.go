package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/riverqueue/river"
	"github.com/robfig/cron/v3"
)

// taskArgs is the single river job kind; the task name selects the handler.
type taskArgs struct {
	Task      string          `json:"task" river:"unique"`
	UniqueKey string          `json:"unique_key,omitempty" river:"unique"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func (taskArgs) Kind() string { return "yatube:task" }

type executor interface {
	execute(ctx context.Context, payload json.RawMessage) error
}

type registry struct {
	tasks map[string]executor
	mu    sync.RWMutex
}

func newRegistry() *registry {
	return &registry{tasks: make(map[string]executor)}
}

func (r *registry) register(name string, e executor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[name] = e
}

func (r *registry) get(name string) (executor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.tasks[name]
	return e, ok
}

func (r *registry) has(name string) bool {
	_, ok := r.get(name)
	return ok
}

func (r *registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.tasks))
}

type typedTask[P any, T interface {
	Name() string
	Handle(context.Context, P) error
}] struct {
	task T
}

func (t typedTask[P, T]) execute(ctx context.Context, raw json.RawMessage) error {
	var payload P
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return errors.Join(ErrInvalidPayload, err)
		}
	}
	return t.task.Handle(ctx, payload)
}

type scheduledTask func(context.Context) error

func (f scheduledTask) execute(ctx context.Context, _ json.RawMessage) error { return f(ctx) }

type taskWorker struct {
	river.WorkerDefaults[taskArgs]
	registry *registry
	logger   *slog.Logger
}

func (w *taskWorker) Work(ctx context.Context, job *river.Job[taskArgs]) error {
	exec, ok := w.registry.get(job.Args.Task)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, job.Args.Task)
	}

	log := w.logger.With(
		slog.String("task", job.Args.Task),
		slog.Int64("job_id", job.ID),
		slog.Int("attempt", job.Attempt),
	)

	start := time.Now()
	if err := exec.execute(ctx, job.Args.Payload); err != nil {
		log.ErrorContext(ctx, "task failed", slog.Any("error", err))
		return err
	}
	log.DebugContext(ctx, "task done", slog.Duration("took", time.Since(start)))
	return nil
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

func parseSchedule(expr string) (river.PeriodicSchedule, error) {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return nil, err
	}
	// cron.Schedule already has the Next(time.Time) time.Time river expects.
	return sched, nil
}

func periodicJobs(cfg *config) ([]*river.PeriodicJob, error) {
	jobs := make([]*river.PeriodicJob, 0, len(cfg.schedules))
	for _, s := range cfg.schedules {
		sched, err := parseSchedule(s.cron)
		if err != nil {
			return nil, fmt.Errorf("job: schedule %s %q: %w", s.name, s.cron, err)
		}
		cfg.registry.register(s.name, scheduledTask(s.run))

		name := s.name
		jobs = append(jobs, river.NewPeriodicJob(sched,
			func() (river.JobArgs, *river.InsertOpts) {
				return taskArgs{Task: name}, nil
			},
			&river.PeriodicJobOpts{},
		))
	}
	return jobs, nil
}
