package jobs

import (
	"context"
	"log/slog"
	"time"

	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// StaleOrderGaugeJob refreshes the stale-placed-orders gauge. An order still
// placed well past the assignment delay means the scheduler is not keeping
// up or no partners are eligible for a long stretch.
type StaleOrderGaugeJob struct {
	handler   queries.GetStalePlacedOrdersQueryHandler
	olderThan time.Duration
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleOrderGaugeJob creates the gauge job. olderThan is the age past
// which a placed order counts as stale.
func NewStaleOrderGaugeJob(
	handler queries.GetStalePlacedOrdersQueryHandler,
	olderThan time.Duration,
	schedule string,
	logger *slog.Logger,
) *StaleOrderGaugeJob {
	return &StaleOrderGaugeJob{
		handler:   handler,
		olderThan: olderThan,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "stale_order_gauge_job"),
	}
}

// Start begins refreshing the gauge on the configured schedule.
func (j *StaleOrderGaugeJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		query, queryErr := queries.NewGetStalePlacedOrdersQuery(j.olderThan)
		if queryErr != nil {
			j.logger.ErrorContext(ctx, "stale order gauge query invalid", "error", queryErr)
			return
		}

		count, handleErr := j.handler.Handle(ctx, query)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "stale order gauge refresh failed", "error", handleErr)
			return
		}

		metrics.StalePlacedOrders.Set(float64(count))
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "stale order gauge job started", "schedule", j.schedule)
	return nil
}

// Stop stops the gauge refresh.
func (j *StaleOrderGaugeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "stale order gauge job stopped")
}
