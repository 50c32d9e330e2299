package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

var _ interfaces.ICustomerRepository = (*CustomerGormRepository)(nil)

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

func (r *CustomerGormRepository) FindByEmail(ctx context.Context, email string) (entities.Customer, error) {
	var m CustomerModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Customer{}, nil
		}
		return entities.Customer{}, err
	}
	return entities.Customer{
		ID:        m.ID,
		Email:     m.Email,
		FullName:  m.FullName,
		Role:      entities.Role(m.Role),
		CreatedAt: m.CreatedAt,
	}, nil
}
