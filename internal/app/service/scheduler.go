package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler drives the periodic recurring-task rollover so the next
// occurrence of a completed recurring task appears without a user action.
type Scheduler struct {
	cron    *cron.Cron
	tasks   *TaskService
	timeout time.Duration
}

func NewScheduler(tasks *TaskService, jobTimeout time.Duration) *Scheduler {
	if jobTimeout <= 0 {
		jobTimeout = time.Minute
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		tasks:   tasks,
		timeout: jobTimeout,
	}
}

// ScheduleRollover registers the rollover job every given interval.
func (s *Scheduler) ScheduleRollover(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("rollover interval must be positive")
	}
	spec := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	_, err := s.cron.AddFunc(spec, s.runRollover)
	return err
}

func (s *Scheduler) runRollover() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	rolled, err := s.tasks.RolloverRecurring(ctx)
	if err != nil {
		zap.L().Error("recurring rollover failed", zap.Error(err))
		return
	}
	if rolled > 0 {
		zap.L().Info("rolled over recurring tasks", zap.Int("count", rolled))
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
