package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IOrderRepository = (*OrderGormRepository)(nil)

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	m := toOrderModel(o)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err, "order_number") {
			return entities.Order{}, interfaces.ErrDuplicateOrderNumber
		}
		return entities.Order{}, err
	}
	return m.toEntity(), nil
}

func (r *OrderGormRepository) CreateItems(ctx context.Context, items []entities.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]OrderItemModel, 0, len(items))
	for _, it := range items {
		rows = append(rows, toOrderItemModel(it))
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *OrderGormRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&OrderItemModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&OrderModel{}).Error
	})
}

func (r *OrderGormRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *OrderGormRepository) GetByProviderOrderID(ctx context.Context, providerOrderID string) (entities.Order, error) {
	if providerOrderID == "" {
		return entities.Order{}, nil
	}
	return r.first(ctx, "provider_order_id = ?", providerOrderID)
}

func (r *OrderGormRepository) ListItems(ctx context.Context, orderID string) ([]entities.OrderItem, error) {
	var rows []OrderItemModel
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entities.OrderItem, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// MarkPaid keeps the first paid_at when the order is already paid.
func (r *OrderGormRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (entities.Order, error) {
	return r.update(ctx, id, map[string]any{
		"payment_status": string(entities.PaymentStatusPaid),
		"status":         string(entities.OrderStatusConfirmed),
		"paid_at":        gorm.Expr("COALESCE(paid_at, ?)", paidAt.UTC()),
	})
}

func (r *OrderGormRepository) MarkPaymentFailed(ctx context.Context, id string) (entities.Order, error) {
	res := r.db.WithContext(ctx).Model(&OrderModel{}).
		Where("id = ? AND payment_status <> ?", id, string(entities.PaymentStatusPaid)).
		Updates(map[string]any{
			"payment_status": string(entities.PaymentStatusFailed),
			"updated_at":     nowUTC(),
		})
	if res.Error != nil {
		return entities.Order{}, res.Error
	}
	o, err := r.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if res.RowsAffected == 0 && o.ID != "" {
		return entities.Order{}, interfaces.ErrOrderAlreadyPaid
	}
	return o, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error) {
	return r.update(ctx, id, map[string]any{"status": string(status)})
}

func (r *OrderGormRepository) SetProviderOrderID(ctx context.Context, id, providerOrderID string) error {
	_, err := r.update(ctx, id, map[string]any{"provider_order_id": providerOrderID})
	return err
}

func (r *OrderGormRepository) update(ctx context.Context, id string, fields map[string]any) (entities.Order, error) {
	fields["updated_at"] = nowUTC()
	res := r.db.WithContext(ctx).Model(&OrderModel{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return entities.Order{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.Order{}, nil
	}
	return r.GetByID(ctx, id)
}

func (r *OrderGormRepository) first(ctx context.Context, query string, arg any) (entities.Order, error) {
	var m OrderModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	return m.toEntity(), nil
}

// isUniqueViolation matches the driver's constraint message, e.g.
// "UNIQUE constraint failed: orders.order_number".
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return (strings.Contains(s, "UNIQUE") || strings.Contains(s, "unique")) && strings.Contains(s, column)
}
