package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/weather-archiver/internal/weather"
)

// DefaultInterval matches the daily rule of the Lambda deployment.
const DefaultInterval = 24 * time.Hour

// runTimeout bounds one job run, like the per-function Lambda timeout.
const runTimeout = 2 * time.Minute

// Runner runs an archive job for a list of cities.
type Runner interface {
	Run(ctx context.Context, job weather.Job, cities []string) (weather.Result, error)
}

// Scheduler periodically archives every job for the configured cities.
type Scheduler struct {
	scheduler *gocron.Scheduler
	runner    Runner
	jobs      []weather.Job
	cities    []string
	interval  time.Duration
	logger    *zap.Logger
}

// New creates a new Scheduler.
func New(runner Runner, jobs []weather.Job, cities []string, interval time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		runner:    runner,
		jobs:      jobs,
		cities:    cities,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the periodic run and starts the underlying scheduler.
// The first run happens one interval after Start.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 || len(s.jobs) == 0 {
		s.logger.Info("scheduler: nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	_, err := s.scheduler.Every(interval).WaitForSchedule().SingletonMode().Do(s.runAll)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", zap.Duration("interval", interval), zap.Strings("cities", s.cities))
	return nil
}

// Stop stops the scheduler and cancels any future runs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// runAll runs the jobs one after another. A failed job is logged and does
// not prevent the remaining jobs from running.
func (s *Scheduler) runAll() {
	s.logger.Info("scheduler: running archive jobs")
	for _, job := range s.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		_, err := s.runner.Run(ctx, job, s.cities)
		cancel()
		if err != nil {
			s.logger.Error("scheduler: run failed", zap.String("job", job.Name), zap.Error(err))
		}
	}
	s.logger.Info("scheduler: completed archive jobs")
}
