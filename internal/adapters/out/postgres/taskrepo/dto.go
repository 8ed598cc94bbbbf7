// Package taskrepo persists the scheduler's durable assignment tasks.
package taskrepo

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/task"

	"github.com/google/uuid"
)

// AssignmentTaskDTO is the database representation of an assignment task.
// The (done, due_at) index is what the sweep's GetDue scan runs on.
type AssignmentTaskDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;index"`
	DueAt    time.Time `gorm:"index:idx_assignment_tasks_open,priority:2"`
	Attempts int
	Done     bool `gorm:"index:idx_assignment_tasks_open,priority:1"`
}

// TableName overrides GORM's default naming to use "assignment_tasks".
func (AssignmentTaskDTO) TableName() string {
	return "assignment_tasks"
}

func fromDomain(aggregate *task.AssignmentTask) AssignmentTaskDTO {
	return AssignmentTaskDTO{
		ID:       aggregate.ID().Bytes(),
		OrderID:  aggregate.OrderID().Bytes(),
		DueAt:    aggregate.DueAt(),
		Attempts: aggregate.Attempts(),
		Done:     aggregate.IsDone(),
	}
}

func toDomain(dto AssignmentTaskDTO) (*task.AssignmentTask, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return task.RestoreAssignmentTask(id, orderID, dto.DueAt, dto.Attempts, dto.Done)
}
