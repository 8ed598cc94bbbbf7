package ports

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/task"
)

// AssignmentTaskRepository persists the scheduler's durable "due at" records.
type AssignmentTaskRepository interface {
	// Add persists a new assignment task. Called in the same transaction as
	// order creation so the schedule survives exactly when the order does.
	Add(ctx context.Context, aggregate *task.AssignmentTask) error

	// Update persists a reschedule or completion.
	Update(ctx context.Context, aggregate *task.AssignmentTask) error

	// GetDue retrieves open tasks whose due time has passed, oldest first,
	// capped at limit.
	GetDue(ctx context.Context, now time.Time, limit int) ([]*task.AssignmentTask, error)
}
