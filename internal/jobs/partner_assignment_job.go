package jobs

import (
	"context"
	"log/slog"

	"foodorder/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PartnerAssignmentJob drives the assignment scheduler. It sweeps the
// durable task table every few seconds and runs an assignment attempt for
// every due task.
type PartnerAssignmentJob struct {
	handler  commands.AssignPartnerCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPartnerAssignmentJob creates the sweep job with the given cron
// schedule (seconds granularity).
func NewPartnerAssignmentJob(
	handler commands.AssignPartnerCommandHandler,
	schedule string,
	logger *slog.Logger,
) *PartnerAssignmentJob {
	return &PartnerAssignmentJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "partner_assignment_job"),
	}
}

// Start begins the sweep on the configured schedule.
func (j *PartnerAssignmentJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewAssignPartnerCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "partner assignment sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "partner assignment job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep. A sweep already in flight finishes.
func (j *PartnerAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "partner assignment job stopped")
}
