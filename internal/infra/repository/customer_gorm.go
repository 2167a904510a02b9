package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

// DI
func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

// 電話番号で1件取得。
// 見つからないのはエラーではなく (zero, false, nil) で返す。
func (r *CustomerGormRepository) FindByPhone(ctx context.Context, phone string) (model.Customer, bool, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).
		Where("phone_number = ?", phone).
		First(&c).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, false, nil
	}
	if err != nil {
		return model.Customer{}, false, err
	}
	return c, true, nil
}

func (r *CustomerGormRepository) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Customer{}, err
	}
	return c, nil
}
