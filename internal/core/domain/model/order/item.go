package order

import (
	"fmt"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

// Item is one line of an order. The unit price is a snapshot frozen from the
// catalog at order-creation time; it never changes afterwards, regardless of
// later catalog updates. Client-supplied prices are never stored.
type Item struct {
	productID kernel.UUID
	name      string
	quantity  int
	unitPrice kernel.Money
}

// NewItem creates a validated order line with a frozen unit price.
func NewItem(productID kernel.UUID, name string, quantity int, unitPrice kernel.Money) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return Item{
		productID: productID,
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// ProductID returns the catalog product this line refers to.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name frozen at creation time.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the frozen per-unit price.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal returns unit price times quantity.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.MulQuantity(i.quantity)
}
