package repository

import (
	"time"

	"storefront/internal/domain/entities"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Relational models for STORAGE_DRIVER=sqlite. Money columns are text so the
// decimal values round-trip exactly.

type ProductModel struct {
	ID             string          `gorm:"primaryKey;size:64"`
	Title          string          `gorm:"size:255;not null;index"`
	Slug           string          `gorm:"size:255;index"`
	SKU            string          `gorm:"size:64"`
	Description    string          `gorm:"type:text"`
	Price          decimal.Decimal `gorm:"type:text;not null"`
	InventoryCount int             `gorm:"not null;default:0"`
	Status         string          `gorm:"size:16;not null;index"`
	ImageURL       string          `gorm:"size:512"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ProductModel) TableName() string { return "products" }

type AddressModel struct {
	Name       string `gorm:"size:255"`
	Line1      string `gorm:"size:255"`
	Line2      string `gorm:"size:255"`
	City       string `gorm:"size:128"`
	PostalCode string `gorm:"size:32"`
	Region     string `gorm:"size:128"`
	Country    string `gorm:"size:64"`
}

type OrderModel struct {
	ID              string          `gorm:"primaryKey;size:64"`
	OrderNumber     string          `gorm:"size:32;uniqueIndex;not null"`
	Email           string          `gorm:"size:255;not null;index"`
	Phone           string          `gorm:"size:64"`
	CustomerID      string          `gorm:"size:64;index"`
	Status          string          `gorm:"size:16;not null"`
	PaymentStatus   string          `gorm:"size:16;not null"`
	Subtotal        decimal.Decimal `gorm:"type:text;not null"`
	ShippingCost    decimal.Decimal `gorm:"type:text;not null"`
	Total           decimal.Decimal `gorm:"type:text;not null"`
	ShippingAddress AddressModel    `gorm:"embedded;embeddedPrefix:shipping_"`
	BillingAddress  AddressModel    `gorm:"embedded;embeddedPrefix:billing_"`
	Notes           string          `gorm:"type:text"`
	ProviderOrderID string          `gorm:"size:128;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PaidAt          *time.Time
}

func (OrderModel) TableName() string { return "orders" }

type OrderItemModel struct {
	ID        string          `gorm:"primaryKey;size:64"`
	OrderID   string          `gorm:"size:64;not null;index"`
	ProductID string          `gorm:"size:64;not null"`
	VariantID string          `gorm:"size:64"`
	Title     string          `gorm:"size:255;not null"`
	Price     decimal.Decimal `gorm:"type:text;not null"`
	Quantity  int             `gorm:"not null"`
	Total     decimal.Decimal `gorm:"type:text;not null"`
	ImageURL  string          `gorm:"size:512"`
}

func (OrderItemModel) TableName() string { return "order_items" }

type CustomerModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	FullName  string `gorm:"size:255"`
	Role      string `gorm:"size:16;not null;default:customer"`
	CreatedAt time.Time
}

func (CustomerModel) TableName() string { return "customers" }

type SubscriberModel struct {
	Email        string `gorm:"primaryKey;size:255"`
	Source       string `gorm:"size:64"`
	SubscribedAt time.Time
}

func (SubscriberModel) TableName() string { return "newsletter_subscribers" }

// AutoMigrate creates or updates every storefront table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ProductModel{},
		&OrderModel{},
		&OrderItemModel{},
		&CustomerModel{},
		&SubscriberModel{},
	)
}

func toProductModel(p entities.Product) ProductModel {
	return ProductModel{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		SKU:            p.SKU,
		Description:    p.Description,
		Price:          p.Price,
		InventoryCount: p.InventoryCount,
		Status:         string(p.Status),
		ImageURL:       p.ImageURL,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (m ProductModel) toEntity() entities.Product {
	return entities.Product{
		ID:             m.ID,
		Title:          m.Title,
		Slug:           m.Slug,
		SKU:            m.SKU,
		Description:    m.Description,
		Price:          m.Price,
		InventoryCount: m.InventoryCount,
		Status:         entities.ProductStatus(m.Status),
		ImageURL:       m.ImageURL,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toOrderModel(o entities.Order) OrderModel {
	return OrderModel{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		Email:           o.Email,
		Phone:           o.Phone,
		CustomerID:      o.CustomerID,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		Subtotal:        o.Subtotal,
		ShippingCost:    o.ShippingCost,
		Total:           o.Total,
		ShippingAddress: AddressModel(o.ShippingAddress),
		BillingAddress:  AddressModel(o.BillingAddress),
		Notes:           o.Notes,
		ProviderOrderID: o.ProviderOrderID,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		PaidAt:          o.PaidAt,
	}
}

func (m OrderModel) toEntity() entities.Order {
	return entities.Order{
		ID:              m.ID,
		OrderNumber:     m.OrderNumber,
		Email:           m.Email,
		Phone:           m.Phone,
		CustomerID:      m.CustomerID,
		Status:          entities.OrderStatus(m.Status),
		PaymentStatus:   entities.PaymentStatus(m.PaymentStatus),
		Subtotal:        m.Subtotal,
		ShippingCost:    m.ShippingCost,
		Total:           m.Total,
		ShippingAddress: entities.Address(m.ShippingAddress),
		BillingAddress:  entities.Address(m.BillingAddress),
		Notes:           m.Notes,
		ProviderOrderID: m.ProviderOrderID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		PaidAt:          m.PaidAt,
	}
}

func toOrderItemModel(it entities.OrderItem) OrderItemModel {
	return OrderItemModel{
		ID:        it.ID,
		OrderID:   it.OrderID,
		ProductID: it.ProductID,
		VariantID: it.VariantID,
		Title:     it.Title,
		Price:     it.Price,
		Quantity:  it.Quantity,
		Total:     it.Total,
		ImageURL:  it.ImageURL,
	}
}

func (m OrderItemModel) toEntity() entities.OrderItem {
	return entities.OrderItem{
		ID:        m.ID,
		OrderID:   m.OrderID,
		ProductID: m.ProductID,
		VariantID: m.VariantID,
		Title:     m.Title,
		Price:     m.Price,
		Quantity:  m.Quantity,
		Total:     m.Total,
		ImageURL:  m.ImageURL,
	}
}
