package order

import (
	"errors"
	"fmt"

	"foodorders/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through the NewItem factory method.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// Item is a value object describing one ordered line item. Prices are kept in
// integer cents to avoid floating-point rounding in totals.
//
// Invariants:
//   - product name must not be empty
//   - quantity must be at least 1
//   - unit price must not be negative
type Item struct {
	productName    string
	quantity       int
	unitPriceCents int64

	isConstructed bool
}

// NewItem creates a validated line item.
//
// Example:
//
//	item, err := order.NewItem("Margherita", 2, 1250)
//	if err != nil {
//	    // handle validation error
//	}
func NewItem(productName string, quantity int, unitPriceCents int64) (Item, error) {
	item := Item{isConstructed: true}

	if err := errors.Join(
		item.setProductName(productName),
		item.setQuantity(quantity),
		item.setUnitPriceCents(unitPriceCents),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item was created via NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ProductName returns the ordered product's display name.
func (i Item) ProductName() string {
	return i.productName
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPriceCents returns the unit price in cents.
func (i Item) UnitPriceCents() int64 {
	return i.unitPriceCents
}

// TotalCents returns quantity times unit price in cents.
func (i Item) TotalCents() int64 {
	return int64(i.quantity) * i.unitPriceCents
}

func (i *Item) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.productName = productName
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is less than 1", quantity),
		)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPriceCents(unitPriceCents int64) error {
	if unitPriceCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"unitPrice",
			fmt.Errorf("%d is negative", unitPriceCents),
		)
	}
	i.unitPriceCents = unitPriceCents
	return nil
}

// RestoreItem reconstructs an Item from persistence without re-running
// creation-time validation semantics beyond the basic invariants.
func RestoreItem(productName string, quantity int, unitPriceCents int64) (Item, error) {
	return NewItem(productName, quantity, unitPriceCents)
}
