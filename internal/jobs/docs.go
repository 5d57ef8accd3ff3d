// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations the service needs.
//
// # Available Jobs
//
// 1. ActiveOrdersGaugeJob - Runs every 15 seconds to refresh the per-tenant
// active order gauges from the database, so capacity dashboards track how
// close each tenant is to its plan limit.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(countsHandler, registry, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Gauge refresh failures are logged and retried on the next tick; a stale
// gauge is preferable to a crashed scheduler.
package jobs
