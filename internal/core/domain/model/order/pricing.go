package order

import (
	"fmt"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

// Pricing is the frozen price breakdown of an order. The total is derived
// from the parts at construction time, so a stored Pricing is always
// internally consistent and reproducible from the subtotal and policy alone.
type Pricing struct {
	subtotal    kernel.Money
	deliveryFee kernel.Money
	tax         kernel.Money
	total       kernel.Money
}

// NewPricing assembles a price breakdown; the total is computed, not
// supplied.
func NewPricing(subtotal, deliveryFee, tax kernel.Money) Pricing {
	return Pricing{
		subtotal:    subtotal,
		deliveryFee: deliveryFee,
		tax:         tax,
		total:       subtotal.Add(deliveryFee).Add(tax),
	}
}

// RestorePricing rebuilds a Pricing from persistence, verifying that the
// stored total still equals the sum of its parts.
func RestorePricing(subtotal, deliveryFee, tax, total kernel.Money) (Pricing, error) {
	expected := subtotal.Add(deliveryFee).Add(tax)
	if total != expected {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("pricing total",
			fmt.Errorf("stored total %d does not equal %d", total.Amount(), expected.Amount()))
	}
	return Pricing{subtotal: subtotal, deliveryFee: deliveryFee, tax: tax, total: total}, nil
}

func (p Pricing) Subtotal() kernel.Money    { return p.subtotal }
func (p Pricing) DeliveryFee() kernel.Money { return p.deliveryFee }
func (p Pricing) Tax() kernel.Money         { return p.tax }
func (p Pricing) Total() kernel.Money       { return p.total }
