package repository

import (
	"context"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriberGormRepository struct {
	db *gorm.DB
}

var _ interfaces.ISubscriberRepository = (*SubscriberGormRepository)(nil)

func NewSubscriberGormRepository(db *gorm.DB) *SubscriberGormRepository {
	return &SubscriberGormRepository{db: db}
}

func (r *SubscriberGormRepository) Upsert(ctx context.Context, s entities.Subscriber) (bool, error) {
	m := SubscriberModel{Email: s.Email, Source: s.Source, SubscribedAt: s.SubscribedAt}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&m)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
