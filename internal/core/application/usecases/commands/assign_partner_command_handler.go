package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/partner"
	"foodorder/internal/core/domain/model/task"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/metrics"
)

// AssignPartnerCommandHandler runs one assignment sweep: it loads the due
// tasks and, per task in its own transaction, attempts to bind the best
// eligible delivery partner to the order.
//
// Binding is a compare-and-set against the partner's version. Several
// scheduler instances may sweep concurrently; they rank the same registry in
// the same deterministic order, so a lost conditional write on one candidate
// simply falls through to the next. When no partner is eligible the task is
// pushed forward by the retry interval instead of failing.
type AssignPartnerCommandHandler struct {
	uowFactory UoWFactory
	selector   services.PartnerSelector
	notifier   ports.NotificationDispatcher

	cooldown      time.Duration
	retryInterval time.Duration
	batchSize     int
	logger        *slog.Logger
}

// NewAssignPartnerCommandHandler creates a handler for assignment sweeps.
func NewAssignPartnerCommandHandler(
	uowFactory UoWFactory,
	selector services.PartnerSelector,
	notifier ports.NotificationDispatcher,
	cooldown time.Duration,
	retryInterval time.Duration,
	batchSize int,
	logger *slog.Logger,
) AssignPartnerCommandHandler {
	return AssignPartnerCommandHandler{
		uowFactory:    uowFactory,
		selector:      selector,
		notifier:      notifier,
		cooldown:      cooldown,
		retryInterval: retryInterval,
		batchSize:     batchSize,
		logger:        logger.With("component", "assign_partner"),
	}
}

// Handle processes every due assignment task. A failure on one task is
// logged and does not stop the sweep.
func (h AssignPartnerCommandHandler) Handle(ctx context.Context, command AssignPartnerCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	due, err := h.loadDueTasks(ctx)
	if err != nil {
		return err
	}

	for _, t := range due {
		if err := h.processTask(ctx, t); err != nil {
			metrics.AssignmentAttempts.WithLabelValues(metrics.AssignmentOutcomeError).Inc()
			h.logger.ErrorContext(ctx, "assignment attempt failed",
				"task_id", t.ID().String(),
				"order_id", t.OrderID().String(),
				"error", err)
		}
	}

	return nil
}

func (h AssignPartnerCommandHandler) loadDueTasks(ctx context.Context) ([]*task.AssignmentTask, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	due, err := uow.AssignmentTaskRepository().GetDue(ctx, time.Now(), h.batchSize)
	if err != nil {
		return nil, err
	}

	return due, uow.Commit(ctx)
}

// processTask makes one assignment attempt for one task inside its own
// transaction: task, order and partner mutations commit together or not at
// all.
func (h AssignPartnerCommandHandler) processTask(ctx context.Context, t *task.AssignmentTask) error {
	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pendingOrder, err := uow.OrderRepository().Get(ctx, t.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			// The order is gone; the schedule entry has nothing to drive.
			t.MarkDone()
			if err = uow.AssignmentTaskRepository().Update(ctx, t); err != nil {
				return err
			}
			metrics.AssignmentAttempts.WithLabelValues(metrics.AssignmentOutcomeNoop).Inc()
			return uow.Commit(ctx)
		}
		return err
	}

	if pendingOrder.Status() != order.StatusPlaced {
		// Cancelled, reconciled or already assigned since scheduling.
		t.MarkDone()
		if err = uow.AssignmentTaskRepository().Update(ctx, t); err != nil {
			return err
		}
		metrics.AssignmentAttempts.WithLabelValues(metrics.AssignmentOutcomeNoop).Inc()
		return uow.Commit(ctx)
	}

	available, err := uow.PartnerRepository().GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	ranked, err := h.selector.RankEligible(available, now, h.cooldown)
	if err != nil {
		if errors.Is(err, services.ErrNoPartnerEligible) {
			return h.reschedule(ctx, uow, t, now)
		}
		return err
	}

	bound, err := h.bindFirstFree(ctx, uow, ranked, now)
	if err != nil {
		return err
	}
	if bound == nil {
		// Every candidate was taken by a concurrent sweep.
		metrics.AssignmentAttempts.WithLabelValues(metrics.AssignmentOutcomeConflict).Inc()
		return h.reschedule(ctx, uow, t, now)
	}

	if err = pendingOrder.AssignPartner(bound.ID(), bound.Name(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, pendingOrder); err != nil {
		if errors.Is(err, errs.ErrVersionConflict) {
			// The order changed under us (cancelled or reconciled). The
			// rollback releases the partner binding; the task stays due and
			// the next sweep sees the fresh state.
			metrics.AssignmentAttempts.WithLabelValues(metrics.AssignmentOutcomeConflict).Inc()
			h.logger.InfoContext(ctx, "order changed during assignment, will re-attempt",
				"order_id", pendingOrder.ID().String())
			return nil
		}
		return err
	}

	t.MarkDone()
	if err = uow.AssignmentTaskRepository().Update(ctx, t); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.AssignmentAttempts.WithLabelValues(metrics.AssignmentOutcomeBound).Inc()
	h.logger.InfoContext(ctx, "partner assigned",
		"order_id", pendingOrder.ID().String(),
		"partner_id", bound.ID().String(),
		"attempt", t.Attempts())

	h.notifier.Notify(ctx, ports.NotificationEvent{
		Type:    ports.EventPartnerAssigned,
		OrderID: pendingOrder.ID(),
		UserID:  pendingOrder.UserID(),
		Note:    "Order confirmed and assigned to delivery partner: " + bound.Name(),
	})

	return nil
}

// bindFirstFree walks the ranked candidates claiming the first whose
// conditional write succeeds. Returns nil when every candidate was lost to a
// concurrent writer.
func (h AssignPartnerCommandHandler) bindFirstFree(
	ctx context.Context,
	uow UoW,
	ranked []*partner.DeliveryPartner,
	now time.Time,
) (*partner.DeliveryPartner, error) {
	for _, candidate := range ranked {
		if err := candidate.MarkAssigned(now, h.cooldown); err != nil {
			return nil, err
		}
		err := uow.PartnerRepository().Update(ctx, candidate)
		if err == nil {
			return candidate, nil
		}
		if errors.Is(err, errs.ErrVersionConflict) {
			continue
		}
		return nil, err
	}
	return nil, nil
}

func (h AssignPartnerCommandHandler) reschedule(
	ctx context.Context,
	uow UoW,
	t *task.AssignmentTask,
	now time.Time,
) error {
	t.Reschedule(now.Add(h.retryInterval))
	if err := uow.AssignmentTaskRepository().Update(ctx, t); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	metrics.AssignmentAttempts.WithLabelValues(metrics.AssignmentOutcomeRetry).Inc()
	h.logger.InfoContext(ctx, "no eligible partner, assignment rescheduled",
		"order_id", t.OrderID().String(),
		"attempt", t.Attempts(),
		"next_due_at", t.DueAt())
	return nil
}
