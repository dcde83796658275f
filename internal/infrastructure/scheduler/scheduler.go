package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/summitcoaching/membership-service/internal/usecase"
)

// sweepTimeout bounds one scheduled run; the store calls carry it down.
const sweepTimeout = 2 * time.Minute

// Scheduler runs the membership expiry sweep on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	logger  *zap.Logger
	sweeper *usecase.ExpirySweeper
}

// New builds a scheduler for the given cron expression (standard 5-field
// syntax, e.g. "0 3 * * *" for 03:00 UTC daily).
func New(schedule string, sweeper *usecase.ExpirySweeper, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		logger:  logger,
		sweeper: sweeper,
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, err
	}

	logger.Info("Expiry sweep scheduled", zap.String("schedule", schedule))
	return s, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	result, err := s.sweeper.Run(ctx)
	if err != nil {
		s.logger.Error("Scheduled sweep failed", zap.Error(err))
		return
	}

	s.logger.Info("Scheduled sweep completed",
		zap.Int("cleaned", result.Cleaned),
		zap.Time("as_of", result.Timestamp))
}

// Start begins the schedule in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
