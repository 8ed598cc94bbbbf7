package services

import (
	"fmt"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
)

// PricingPolicy derives the fee and tax parts of an order's pricing snapshot
// from the subtotal. The formulas are configuration, not hidden logic: given
// the same subtotal and policy, the breakdown is always reproducible.
//
// Tax is a flat percentage of the subtotal. The delivery fee is a flat
// amount, waived entirely once the subtotal exceeds the free-delivery
// threshold.
type PricingPolicy struct {
	taxRatePercent        int
	deliveryFee           kernel.Money
	freeDeliveryThreshold kernel.Money
}

// NewPricingPolicy creates a pricing policy from configuration values.
func NewPricingPolicy(taxRatePercent int, deliveryFee, freeDeliveryThreshold kernel.Money) (PricingPolicy, error) {
	if taxRatePercent < 0 || taxRatePercent > 100 {
		return PricingPolicy{}, errs.NewValueIsOutOfRangeError("taxRatePercent", taxRatePercent, 0, 100)
	}
	return PricingPolicy{
		taxRatePercent:        taxRatePercent,
		deliveryFee:           deliveryFee,
		freeDeliveryThreshold: freeDeliveryThreshold,
	}, nil
}

// Quote computes the full pricing snapshot for a set of frozen order lines.
func (p PricingPolicy) Quote(items []order.Item) (order.Pricing, error) {
	if len(items) == 0 {
		return order.Pricing{}, order.ErrEmptyCart
	}

	var subtotal kernel.Money
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	return order.NewPricing(subtotal, p.DeliveryFeeFor(subtotal), subtotal.Percent(p.taxRatePercent)), nil
}

// DeliveryFeeFor returns the delivery fee charged at the given subtotal:
// the flat fee, or zero above the free-delivery threshold.
func (p PricingPolicy) DeliveryFeeFor(subtotal kernel.Money) kernel.Money {
	if subtotal.GreaterThan(p.freeDeliveryThreshold) {
		return 0
	}
	return p.deliveryFee
}

// String renders the policy for startup logging.
func (p PricingPolicy) String() string {
	return fmt.Sprintf("tax %d%%, delivery fee %d (free above %d)",
		p.taxRatePercent, p.deliveryFee.Amount(), p.freeDeliveryThreshold.Amount())
}
