// Package metrics holds the Prometheus collectors for the order engine.
// Collectors are registered on the default registry at init and exposed
// through the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Assignment attempt outcomes.
const (
	AssignmentOutcomeBound    = "bound"
	AssignmentOutcomeRetry    = "retry"
	AssignmentOutcomeNoop     = "noop"
	AssignmentOutcomeConflict = "conflict"
	AssignmentOutcomeError    = "error"
)

var (
	// OrdersCreated counts successfully placed orders by payment method.
	OrdersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodorder",
		Name:      "orders_created_total",
		Help:      "Orders placed, by payment method.",
	}, []string{"payment_method"})

	// AssignmentAttempts counts scheduler assignment attempts by outcome.
	AssignmentAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodorder",
		Name:      "assignment_attempts_total",
		Help:      "Partner assignment attempts, by outcome.",
	}, []string{"outcome"})

	// PaymentsReconciled counts payment callback reconciliations by result.
	PaymentsReconciled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodorder",
		Name:      "payments_reconciled_total",
		Help:      "Payment callback reconciliations, by result.",
	}, []string{"result"})

	// StalePlacedOrders tracks orders still in placed status beyond the
	// expected assignment delay. Scraped from a periodic job.
	StalePlacedOrders = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "foodorder",
		Name:      "stale_placed_orders",
		Help:      "Orders stuck in placed status beyond the assignment delay.",
	})
)
