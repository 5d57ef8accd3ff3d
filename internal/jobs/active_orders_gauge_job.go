package jobs

import (
	"context"
	"log/slog"

	"foodorders/internal/core/application/usecases/queries"
	"foodorders/internal/metrics"

	"github.com/robfig/cron/v3"
)

// ActiveOrdersGaugeJob refreshes the per-tenant active order gauges.
// Runs every 15 seconds; the gauge vector is reset on each refresh so
// tenants that dropped to zero active orders disappear from it.
type ActiveOrdersGaugeJob struct {
	handler  queries.GetActiveOrderCountsQueryHandler
	registry *metrics.Registry
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewActiveOrdersGaugeJob creates a job refreshing the capacity gauges from
// the database.
func NewActiveOrdersGaugeJob(
	handler queries.GetActiveOrderCountsQueryHandler,
	registry *metrics.Registry,
	logger *slog.Logger,
) *ActiveOrdersGaugeJob {
	return &ActiveOrdersGaugeJob{
		handler:  handler,
		registry: registry,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "active_orders_gauge_job"),
	}
}

// Start begins the gauge refresh job on a 15 second schedule.
func (j *ActiveOrdersGaugeJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", j.refresh)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Active orders gauge job started (running every 15 seconds)")
	return nil
}

// Stop stops the gauge refresh job.
func (j *ActiveOrdersGaugeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Active orders gauge job stopped")
}

func (j *ActiveOrdersGaugeJob) refresh() {
	ctx := context.Background()

	counts, err := j.handler.Handle(ctx, queries.NewGetActiveOrderCountsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Active orders gauge refresh failed", "error", err)
		return
	}

	j.registry.TenantActiveOrders.Reset()
	for _, count := range counts {
		j.registry.TenantActiveOrders.
			WithLabelValues(count.TenantID.String()).
			Set(float64(count.ActiveOrders))
	}
}
