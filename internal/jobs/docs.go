// Package jobs provides scheduled background tasks for the CRM.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and are managed through
// JobManager, which starts and stops them as a group:
//
//	jobManager := jobs.NewJobManager(assignCourierHandler, sweepHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// 1. OrderAssignmentJob - runs every ten seconds and assigns new orders to
// available couriers.
// 2. StaleCourierJob - runs every minute and takes couriers off shift when
// their GPS feed has been quiet for longer than the stale threshold.
//
// # Error Handling
//
// The assignment job treats an empty order queue and an empty courier pool
// as normal states and logs them at debug level only. All other errors are
// logged and the next tick retries.
package jobs
