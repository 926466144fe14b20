package jobs

import (
	"fmt"
	"log/slog"

	"crm/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	orderAssignmentJob *OrderAssignmentJob
	staleCourierJob    *StaleCourierJob
}

// NewJobManager creates a job manager with all background jobs wired to
// their command handlers.
func NewJobManager(
	assignCourierHandler commands.AssignCourierCommandHandler,
	sweepStaleCouriersHandler commands.SweepStaleCouriersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderAssignmentJob: NewOrderAssignmentJob(assignCourierHandler, logger),
		staleCourierJob:    NewStaleCourierJob(sweepStaleCouriersHandler, logger),
	}
}

// StartAll starts all scheduled jobs. If a job fails to start, the jobs
// already running are stopped before the error is returned.
func (jm *JobManager) StartAll() error {
	if err := jm.orderAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start order assignment job: %w", err)
	}

	if err := jm.staleCourierJob.Start(); err != nil {
		jm.orderAssignmentJob.Stop()
		return fmt.Errorf("failed to start stale courier job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs.
func (jm *JobManager) StopAll() {
	jm.staleCourierJob.Stop()
	jm.orderAssignmentJob.Stop()
}
