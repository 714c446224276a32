package repository

import (
	"context"

	"carwash-backend/models"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	*Repository[models.Customer]
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{New[models.Customer](db)}
}

func (r *CustomerRepository) WithTx(tx *gorm.DB) *CustomerRepository {
	return NewCustomerRepository(tx)
}

func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// PhoneTaken reports whether another customer already uses phone.
func (r *CustomerRepository) PhoneTaken(ctx context.Context, phone string, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("phone = ? AND id <> ?", phone, exceptID).
		Count(&count).Error
	return count > 0, err
}

// GetWithVehicles loads a customer and its vehicles.
func (r *CustomerRepository) GetWithVehicles(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).Preload("Vehicles").First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *CustomerRepository) Vehicles(ctx context.Context, customerID uint) ([]models.CustomerVehicle, error) {
	var vehicles []models.CustomerVehicle
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&vehicles).Error
	return vehicles, err
}

func (r *CustomerRepository) AddVehicle(ctx context.Context, v *models.CustomerVehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// Delete removes the customer with its vehicles and group memberships.
func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&models.CustomerVehicle{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.CustomerGroupMember{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Customer{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// RecordVisit adds one visit and amount to the customer's running totals.
func (r *CustomerRepository) RecordVisit(ctx context.Context, id uint, amount float64, date string) error {
	return r.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Updates(map[string]interface{}{
		"total_visits": gorm.Expr("total_visits + ?", 1),
		"total_spent":  gorm.Expr("total_spent + ?", amount),
		"last_visit":   date,
	}).Error
}

// ReverseVisit undoes RecordVisit, never going below zero.
func (r *CustomerRepository) ReverseVisit(ctx context.Context, id uint, amount float64) error {
	return r.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Updates(map[string]interface{}{
		"total_visits": gorm.Expr("CASE WHEN total_visits > 0 THEN total_visits - 1 ELSE 0 END"),
		"total_spent":  gorm.Expr("CASE WHEN total_spent > ? THEN total_spent - ? ELSE 0 END", amount, amount),
	}).Error
}
