package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusArchived ProductStatus = "archived"
)

// Product is the catalog entry as seen by checkout. The catalog owns it;
// checkout only ever writes InventoryCount, through a conditional decrement.
type Product struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Slug           string          `json:"slug"`
	SKU            string          `json:"sku"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	InventoryCount int             `json:"inventory_count"`
	Status         ProductStatus   `json:"status"`
	ImageURL       string          `json:"image_url,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (p Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// DecrementOutcome is the result of a compare-and-decrement on inventory.
type DecrementOutcome int

const (
	// DecrementApplied means the stored count matched and was reduced.
	DecrementApplied DecrementOutcome = iota
	// DecrementLostRace means the stored count changed since it was read;
	// nothing was written.
	DecrementLostRace
)

func (o DecrementOutcome) String() string {
	switch o {
	case DecrementApplied:
		return "applied"
	case DecrementLostRace:
		return "lost_race"
	default:
		return "unknown"
	}
}
