package repository

import (
	"context"
	"time"

	"carwash-backend/models"
	"carwash-backend/pricing"

	"gorm.io/gorm"
)

type PromotionRepository struct {
	*Repository[models.Promotion]
}

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{New[models.Promotion](db)}
}

func (r *PromotionRepository) WithTx(tx *gorm.DB) *PromotionRepository {
	return NewPromotionRepository(tx)
}

// Active lists promotions whose derived status is ACTIVE on now's date.
func (r *PromotionRepository) Active(ctx context.Context, now time.Time) ([]models.Promotion, error) {
	today := now.Format(pricing.DateLayout)
	var promos []models.Promotion
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, today, today).
		Order("end_date").
		Find(&promos).Error
	return promos, err
}

// Toggle flips is_active and returns the updated row.
func (r *PromotionRepository) Toggle(ctx context.Context, id uint) (*models.Promotion, error) {
	result := r.db.WithContext(ctx).Model(&models.Promotion{}).
		Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

// IncrementUsage counts one use, failing with ErrConflict once the limit is reached.
func (r *PromotionRepository) IncrementUsage(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Promotion{}).
		Where("id = ? AND (usage_limit IS NULL OR usage_limit <= 0 OR used_count < usage_limit)", id).
		Update("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// ReleaseUsage gives back one use.
func (r *PromotionRepository) ReleaseUsage(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Promotion{}).
		Where("id = ? AND used_count > 0", id).
		Update("used_count", gorm.Expr("used_count - 1")).Error
}

// UpdateTerms writes an edited promotion. used_count is owned by invoice
// creation and deletion and is never written here.
func (r *PromotionRepository) UpdateTerms(ctx context.Context, p *models.Promotion) error {
	result := r.db.WithContext(ctx).Model(p).
		Select("*").
		Omit("id", "created_at", "used_count").
		Updates(p)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
