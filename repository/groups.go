package repository

import (
	"context"

	"carwash-backend/models"

	"gorm.io/gorm"
)

type GroupRepository struct {
	*Repository[models.CustomerGroup]
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{New[models.CustomerGroup](db)}
}

// Members lists the customers in a group.
func (r *GroupRepository) Members(ctx context.Context, groupID uint) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Joins("JOIN customer_group_members m ON m.customer_id = customers.id").
		Where("m.group_id = ?", groupID).
		Order("customers.name").
		Find(&customers).Error
	return customers, err
}

// AddMember is idempotent.
func (r *GroupRepository) AddMember(ctx context.Context, groupID, customerID uint) error {
	member, err := IsMember(ctx, r.db, groupID, customerID)
	if err != nil || member {
		return err
	}
	return r.db.WithContext(ctx).Create(&models.CustomerGroupMember{GroupID: groupID, CustomerID: customerID}).Error
}

func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, customerID uint) error {
	result := r.db.WithContext(ctx).
		Where("group_id = ? AND customer_id = ?", groupID, customerID).
		Delete(&models.CustomerGroupMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the group and its memberships.
func (r *GroupRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.CustomerGroupMember{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.CustomerGroup{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
