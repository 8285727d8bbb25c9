package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"rentwheels/internal/jobs"
	"rentwheels/shared/timezone"
)

// Scheduler runs the periodic jobs of the service.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler builds a scheduler with every job registered. Runs of the
// same job never overlap.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(timezone.GetLocation()),
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	if _, err := s.cron.AddFunc(cfg.SweepSpec, s.jobs.SweepReservations); err != nil {
		log.Error().Err(err).Str("spec", cfg.SweepSpec).Msg("Failed to register SweepReservations job")

		return fmt.Errorf("failed to register sweep job: %w", err)
	}

	log.Info().Str("sweep", cfg.SweepSpec).Msg("Cron jobs registered")

	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Msg("Cron scheduler started")
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Cron scheduler stopped")
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
