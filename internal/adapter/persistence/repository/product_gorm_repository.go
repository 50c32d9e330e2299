package repository

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IProductRepository = (*ProductGormRepository)(nil)

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) GetByID(ctx context.Context, id string) (entities.Product, error) {
	var m ProductModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Product{}, nil
		}
		return entities.Product{}, err
	}
	return m.toEntity(), nil
}

func (r *ProductGormRepository) ListActive(ctx context.Context, q interfaces.ProductQuery) ([]entities.Product, int, error) {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	scope := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&ProductModel{}).Where("status = ?", string(entities.ProductStatusActive))
		if search != "" {
			tx = tx.Where("LOWER(title) LIKE ?", "%"+search+"%")
		}
		return tx
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []ProductModel
	find := scope().Order("title, id").Offset(q.Offset)
	if q.Limit > 0 {
		find = find.Limit(q.Limit)
	}
	if err := find.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]entities.Product, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, int(total), nil
}

// CompareAndDecrement writes only when inventory_count still equals expected.
func (r *ProductGormRepository) CompareAndDecrement(ctx context.Context, productID string, expected, quantity int) (entities.DecrementOutcome, error) {
	res := r.db.WithContext(ctx).Model(&ProductModel{}).
		Where("id = ? AND inventory_count = ?", productID, expected).
		Updates(map[string]any{
			"inventory_count": expected - quantity,
			"updated_at":      nowUTC(),
		})
	if res.Error != nil {
		return entities.DecrementLostRace, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.DecrementLostRace, nil
	}
	return entities.DecrementApplied, nil
}

// Put inserts or replaces a catalog entry. Used for seeding.
func (r *ProductGormRepository) Put(ctx context.Context, p entities.Product) error {
	m := toProductModel(p)
	return r.db.WithContext(ctx).Save(&m).Error
}
