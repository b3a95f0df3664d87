// Package sweep runs the periodic job that completes confirmed bookings
// whose end time has passed.
package sweep

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/quickcourt/quickcourt-backend/internal/booking"
)

const jobTimeout = 30 * time.Second

// Sweeper wraps a gocron scheduler that periodically flips confirmed
// bookings past their end time to completed.
type Sweeper struct {
	scheduler gocron.Scheduler
	service   booking.Service
}

// New builds a sweeper running on the given cron expression.
func New(service booking.Service, cronExpr string) (*Sweeper, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					log.Error().
						Str("job_id", jobID.String()).
						Str("job_name", jobName).
						Interface("panic", recoverData).
						Msg("sweep job panicked")
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}

	s := &Sweeper{scheduler: scheduler, service: service}

	_, err = scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(s.run),
		gocron.WithName("booking-completion-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeWait),
	)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.service.Sweep(ctx)
	if err != nil {
		log.Error().Err(err).Msg("booking completion sweep failed")
		return
	}
	if n > 0 {
		log.Info().Int64("completed", n).Msg("bookings marked completed")
	}
}

// Start begins running the sweep on its schedule.
func (s *Sweeper) Start() {
	log.Info().Msg("booking completion sweep starting")
	s.scheduler.Start()
}

// Stop shuts the scheduler down and waits for a running sweep to finish.
func (s *Sweeper) Stop() error {
	log.Info().Msg("booking completion sweep stopping")
	return s.scheduler.Shutdown()
}
