// Package jobs provides scheduled background tasks for the production service,
// built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// QueueReportJob logs the per-status order counts and the wait of the oldest
// order not yet started. The schedule defaults to every minute and is set with
// QUEUE_REPORT_SCHEDULE.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(summaryHandler, cfg.QueueReportSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// A failing report is logged and the next tick tries again.
package jobs
