// Package jobs provides the scheduled background tasks of the commissions
// service, built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. TalentAssignmentJob - links the oldest paid, unassigned order to a producer with free capacity
// 2. AutoCompleteSweepJob - completes orchestra deliveries whose review window has passed
//
// Both are optional. Reading an order already applies auto-completion, so the
// sweep only matters for orders nobody looks at.
//
// # Usage
//
//	manager := jobs.NewJobManager()
//	manager.Add("talent assignment", jobs.NewTalentAssignmentJob(assignHandler, "*/5 * * * * *", m, log))
//	if err := manager.StartAll(); err != nil {
//		log.Fatal().Err(err).Msg("failed to start jobs")
//	}
//	defer manager.StopAll()
//
// # Error Handling
//
// - The assignment job treats "no order waiting" and "no talent free" as idle ticks
// - The sweep logs the combined per-order errors of a batch and carries on next tick
// - A failed start stops the jobs that were already running
package jobs
