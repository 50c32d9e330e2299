package usecase

import (
	"context"
	"log"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"
)

// DecrementReport is the per-line result of an inventory decrement.
type DecrementReport struct {
	ProductID string
	Quantity  int
	Outcome   entities.DecrementOutcome
	Err       error
}

// Applied reports whether the stock was actually reduced.
func (r DecrementReport) Applied() bool {
	return r.Err == nil && r.Outcome == entities.DecrementApplied
}

// IInventoryDecrementer reduces stock for the lines of a placed order.
//
// Each line is a single compare-and-decrement against the count observed at
// validation time. Lost races and errors are reported and logged but never
// retried and never fail the order.
type IInventoryDecrementer interface {
	Apply(ctx context.Context, lines []DraftLine) []DecrementReport
}

type InventoryDecrementer struct {
	products interfaces.IProductRepository
}

var _ IInventoryDecrementer = (*InventoryDecrementer)(nil)

func NewInventoryDecrementer(products interfaces.IProductRepository) *InventoryDecrementer {
	return &InventoryDecrementer{products: products}
}

func (d *InventoryDecrementer) Apply(ctx context.Context, lines []DraftLine) []DecrementReport {
	reports := make([]DecrementReport, 0, len(lines))
	for _, l := range lines {
		outcome, err := d.products.CompareAndDecrement(ctx, l.ProductID, l.ObservedInventory, l.Quantity)
		r := DecrementReport{ProductID: l.ProductID, Quantity: l.Quantity, Outcome: outcome, Err: err}
		switch {
		case err != nil:
			log.Printf("[checkout][inventory] decrement failed product_id=%s qty=%d err=%v", l.ProductID, l.Quantity, err)
		case outcome == entities.DecrementLostRace:
			log.Printf("[checkout][inventory] lost race product_id=%s expected=%d qty=%d", l.ProductID, l.ObservedInventory, l.Quantity)
		}
		reports = append(reports, r)
	}
	return reports
}
