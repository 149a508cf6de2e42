// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs run on github.com/robfig/cron/v3 with second-level schedules and are
// started and stopped together through JobManager:
//
//	jobManager := jobs.NewJobManager(deliveryCompletionJob)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("failed to start jobs", "error", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// DeliveryCompletionJob moves deliveries of orders placed more than a
// configured delay ago from READY to COMP, one batch per run. Orders locked by
// a concurrent cancel are skipped and retried on the next run.
package jobs
