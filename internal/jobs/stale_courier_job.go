package jobs

import (
	"context"
	"log/slog"
	"time"

	"crm/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// staleThreshold is how long a courier may stay on shift without a GPS fix
// before the sweep takes them off.
const staleThreshold = 15 * time.Minute

// StaleCourierJob periodically takes couriers whose GPS feed has gone quiet
// off shift, so dispatch never routes orders to a courier nobody can locate.
type StaleCourierJob struct {
	handler commands.SweepStaleCouriersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStaleCourierJob creates a job that sweeps stale couriers every minute.
func NewStaleCourierJob(handler commands.SweepStaleCouriersCommandHandler, logger *slog.Logger) *StaleCourierJob {
	return &StaleCourierJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stale_courier_job"),
	}
}

// Start schedules the sweep job.
func (j *StaleCourierJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewSweepStaleCouriersCommand(staleThreshold)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale courier sweep misconfigured", "error", err)
			return
		}

		swept, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale courier sweep failed", "error", err)
			return
		}
		if swept > 0 {
			j.logger.InfoContext(ctx, "Couriers taken off shift after going quiet", "count", swept)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale courier job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *StaleCourierJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale courier job stopped")
}
