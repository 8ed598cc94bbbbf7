package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/task"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/metrics"
)

// ErrProductOutOfStock is returned when a cart line references a product the
// catalog reports as out of stock.
var ErrProductOutOfStock = errors.New("product is out of stock")

// CreateOrderCommandHandler converts a priced cart into an immutable order.
//
// The handler re-fetches every line's price from the catalog (client prices
// are never trusted), computes the pricing snapshot through the policy,
// creates a payment intent for online payments, and writes the order
// together with its first assignment task in one transaction. The task fires
// after a fixed delay, so the creating request always returns before the
// first assignment attempt.
//
// The cart is cleared after the commit. A clear failure does not fail the
// checkout: the order stands and the failure is logged as a reconciliation
// warning.
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	catalog    ports.CatalogClient
	cart       ports.CartClient
	payments   ports.PaymentProvider
	notifier   ports.NotificationDispatcher
	pricing    services.PricingPolicy

	initialDelay time.Duration
	currency     string
	logger       *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for checkout operations.
func NewCreateOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	catalog ports.CatalogClient,
	cart ports.CartClient,
	payments ports.PaymentProvider,
	notifier ports.NotificationDispatcher,
	pricing services.PricingPolicy,
	initialDelay time.Duration,
	currency string,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:   uowFactory,
		catalog:      catalog,
		cart:         cart,
		payments:     payments,
		notifier:     notifier,
		pricing:      pricing,
		initialDelay: initialDelay,
		currency:     currency,
		logger:       logger.With("component", "create_order"),
	}
}

// Handle processes the checkout command and returns the created order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	items, err := h.freezeItems(ctx, command.Lines())
	if err != nil {
		return nil, err
	}

	pricing, err := h.pricing.Quote(items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	newOrder, err := order.NewOrder(
		command.OrderID(),
		command.UserID(),
		items,
		command.Address(),
		command.PaymentMethod(),
		pricing,
		now,
	)
	if err != nil {
		return nil, err
	}

	if command.PaymentMethod() == order.PaymentMethodOnline {
		providerRef, intentErr := h.payments.CreatePaymentIntent(ctx, pricing.Total(), h.currency)
		if intentErr != nil {
			return nil, fmt.Errorf("create payment intent: %w", intentErr)
		}
		newOrder.AttachPaymentIntent(providerRef)
	}

	assignmentTask, err := task.NewAssignmentTask(kernel.NewUUID(), newOrder.ID(), now.Add(h.initialDelay))
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.AssignmentTaskRepository().Add(ctx, assignmentTask); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrdersCreated.WithLabelValues(newOrder.PaymentMethod().String()).Inc()

	// The order is durable from here on; only best-effort work remains.
	if err = h.cart.ClearCart(ctx, command.UserID()); err != nil {
		h.logger.WarnContext(ctx, "cart clear failed after order creation, needs reconciliation",
			"order_id", newOrder.ID().String(),
			"user_id", command.UserID().String(),
			"error", err)
	}

	h.notifier.Notify(ctx, ports.NotificationEvent{
		Type:    ports.EventOrderPlaced,
		OrderID: newOrder.ID(),
		UserID:  newOrder.UserID(),
		Note:    "Order placed successfully",
	})

	return newOrder, nil
}

// freezeItems resolves every cart line against the catalog and freezes the
// current price onto the order line.
func (h CreateOrderCommandHandler) freezeItems(ctx context.Context, lines []ports.CartLine) ([]order.Item, error) {
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		product, err := h.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return nil, errs.NewObjectNotFoundErrorWithCause("product", line.ProductID.String(), err)
			}
			return nil, err
		}
		if !product.InStock {
			return nil, fmt.Errorf("product %s: %w", line.ProductID, ErrProductOutOfStock)
		}

		item, err := order.NewItem(product.ID, product.Name, line.Quantity, product.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
