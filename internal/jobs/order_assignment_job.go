package jobs

import (
	"context"
	"errors"
	"log/slog"

	"crm/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderAssignmentJob periodically matches new orders with available couriers.
type OrderAssignmentJob struct {
	handler commands.AssignCourierCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderAssignmentJob creates a job that runs courier assignment every ten
// seconds.
func NewOrderAssignmentJob(handler commands.AssignCourierCommandHandler, logger *slog.Logger) *OrderAssignmentJob {
	return &OrderAssignmentJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_assignment_job"),
	}
}

// Start schedules the assignment job.
func (j *OrderAssignmentJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAssignCourierCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty queue and an empty courier pool are normal states,
			// not failures.
			if errors.Is(err, commands.ErrNoOrderToAssign) || errors.Is(err, commands.ErrNoAvailableCouriers) {
				j.logger.DebugContext(ctx, "Nothing to assign", "reason", err)
				return
			}
			j.logger.ErrorContext(ctx, "Order assignment job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order assignment job started (running every ten seconds)")
	return nil
}

// Stop stops the assignment job.
func (j *OrderAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order assignment job stopped")
}
