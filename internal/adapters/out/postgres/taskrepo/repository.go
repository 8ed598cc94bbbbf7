package taskrepo

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/task"

	"gorm.io/gorm"
)

// GormAssignmentTaskRepository implements ports.AssignmentTaskRepository
// using GORM.
type GormAssignmentTaskRepository struct {
	db *gorm.DB
}

// NewGormAssignmentTaskRepository creates a new GORM assignment-task
// repository.
func NewGormAssignmentTaskRepository(db *gorm.DB) *GormAssignmentTaskRepository {
	return &GormAssignmentTaskRepository{db: db}
}

// Add saves a new assignment task.
func (r *GormAssignmentTaskRepository) Add(ctx context.Context, aggregate *task.AssignmentTask) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves a reschedule or completion.
func (r *GormAssignmentTaskRepository) Update(ctx context.Context, aggregate *task.AssignmentTask) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).
		Model(&AssignmentTaskDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto).Error
}

// GetDue retrieves open tasks whose due time has passed, oldest first.
func (r *GormAssignmentTaskRepository) GetDue(ctx context.Context, now time.Time, limit int) ([]*task.AssignmentTask, error) {
	var dtos []AssignmentTaskDTO
	err := r.db.WithContext(ctx).
		Where("done = ? AND due_at <= ?", false, now).
		Order("due_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]*task.AssignmentTask, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, nil
}
