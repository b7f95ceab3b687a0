// Package jobs provides scheduled background tasks for the pizzeria.
//
// Two cron-based jobs keep time-driven state moving:
//
//  1. DeliveryCompletionJob - marks paid orders Delivered once their
//     countdown elapses and publishes the status change.
//  2. CourierAvailabilityJob - returns couriers to the available pool
//     once their delivery window elapses.
//
// Both jobs run every second, so a countdown is never visibly stale for
// longer than that. The read path runs the same completion sweep before
// serving order history, making the jobs an upper bound on staleness
// rather than a correctness requirement.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(completeHandler, refreshHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Transient store failures inside a sweep are retried with bounded
// backoff before the run is abandoned; the next tick picks up whatever
// the failed run left behind.
package jobs
