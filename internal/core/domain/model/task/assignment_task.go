// Package task contains the durable assignment task: a persisted "due at"
// record that drives the delivery-partner assignment scheduler. Persisting
// the schedule instead of holding in-process timers means a restart never
// silently drops a pending assignment.
package task

import (
	"errors"
	"time"

	"foodorder/internal/core/domain/model/kernel"
)

// ErrTaskIsNotConstructed is returned when an AssignmentTask was not created
// through NewAssignmentTask or RestoreAssignmentTask.
var ErrTaskIsNotConstructed = errors.New("AssignmentTask must be created via NewAssignmentTask or RestoreAssignmentTask")

// AssignmentTask schedules one pending partner-assignment attempt for an
// order. The sweep job picks up tasks whose due time has passed, runs the
// attempt, and either completes the task or pushes its due time forward for
// a retry. There is at most one open task per order.
type AssignmentTask struct {
	id       kernel.UUID
	orderID  kernel.UUID
	dueAt    time.Time
	attempts int
	done     bool

	isConstructed bool
}

// NewAssignmentTask schedules the first assignment attempt for an order.
func NewAssignmentTask(id, orderID kernel.UUID, dueAt time.Time) (*AssignmentTask, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	return &AssignmentTask{
		id:            id,
		orderID:       orderID,
		dueAt:         dueAt,
		isConstructed: true,
	}, nil
}

// RestoreAssignmentTask rebuilds a task from persistence.
func RestoreAssignmentTask(id, orderID kernel.UUID, dueAt time.Time, attempts int, done bool) (*AssignmentTask, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	return &AssignmentTask{
		id:            id,
		orderID:       orderID,
		dueAt:         dueAt,
		attempts:      attempts,
		done:          done,
		isConstructed: true,
	}, nil
}

// Validate ensures the task was built through a constructor.
func (t *AssignmentTask) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTaskIsNotConstructed
	}
	return nil
}

func (t *AssignmentTask) ID() kernel.UUID      { return t.id }
func (t *AssignmentTask) OrderID() kernel.UUID { return t.orderID }
func (t *AssignmentTask) DueAt() time.Time     { return t.dueAt }
func (t *AssignmentTask) Attempts() int        { return t.attempts }
func (t *AssignmentTask) IsDone() bool         { return t.done }

// IsDue reports whether the task should be picked up at the given instant.
func (t *AssignmentTask) IsDue(now time.Time) bool {
	return !t.done && !t.dueAt.After(now)
}

// Reschedule pushes the task forward after a failed attempt.
func (t *AssignmentTask) Reschedule(dueAt time.Time) {
	t.attempts++
	t.dueAt = dueAt
}

// MarkDone closes the task after a successful binding or once the order left
// the placed status. Attempts are counted for either outcome.
func (t *AssignmentTask) MarkDone() {
	t.attempts++
	t.done = true
}
