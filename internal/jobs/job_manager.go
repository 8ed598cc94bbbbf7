// Package jobs provides the scheduled background work: the partner
// assignment sweep and the staleness gauge refresh, both cron-driven.
package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	assignmentJob *PartnerAssignmentJob
	staleGaugeJob *StaleOrderGaugeJob
}

// NewJobManager creates a manager over the given jobs.
func NewJobManager(assignmentJob *PartnerAssignmentJob, staleGaugeJob *StaleOrderGaugeJob) *JobManager {
	return &JobManager{
		assignmentJob: assignmentJob,
		staleGaugeJob: staleGaugeJob,
	}
}

// StartAll starts all scheduled jobs. If a later job fails to start, the
// already-started ones are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.assignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start partner assignment job: %w", err)
	}

	if err := jm.staleGaugeJob.Start(); err != nil {
		jm.assignmentJob.Stop()
		return fmt.Errorf("failed to start stale order gauge job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs.
func (jm *JobManager) StopAll() {
	jm.staleGaugeJob.Stop()
	jm.assignmentJob.Stop()
}
