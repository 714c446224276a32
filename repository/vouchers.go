package repository

import (
	"context"
	"time"

	"carwash-backend/models"
	"carwash-backend/pricing"

	"gorm.io/gorm"
)

type VoucherRepository struct {
	*Repository[models.Voucher]
}

func NewVoucherRepository(db *gorm.DB) *VoucherRepository {
	return &VoucherRepository{New[models.Voucher](db)}
}

func (r *VoucherRepository) WithTx(tx *gorm.DB) *VoucherRepository {
	return NewVoucherRepository(tx)
}

func (r *VoucherRepository) FindByCode(ctx context.Context, code string) (*models.Voucher, error) {
	var v models.Voucher
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&v).Error; err != nil {
		return nil, notFound(err)
	}
	return &v, nil
}

func (r *VoucherRepository) CodeTaken(ctx context.Context, code string, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Voucher{}).
		Where("code = ? AND id <> ?", code, exceptID).
		Count(&count).Error
	return count > 0, err
}

// Redeem marks a voucher used in one conditional update. It fails with
// ErrConflict when the voucher was already used.
func (r *VoucherRepository) Redeem(ctx context.Context, id, invoiceID uint, now time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Voucher{}).
		Where("id = ? AND is_used = ?", id, false).
		Updates(map[string]interface{}{
			"is_used":         true,
			"used_date":       now.Format(pricing.DateLayout),
			"used_invoice_id": invoiceID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// IsMember reports whether a customer belongs to a group.
func IsMember(ctx context.Context, db *gorm.DB, groupID, customerID uint) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&models.CustomerGroupMember{}).
		Where("group_id = ? AND customer_id = ?", groupID, customerID).
		Count(&count).Error
	return count > 0, err
}

// UpdateUnused writes an edited voucher as long as it is still unused. The
// redemption columns are left alone, so a concurrent Redeem always wins and
// the update fails with ErrConflict.
func (r *VoucherRepository) UpdateUnused(ctx context.Context, v *models.Voucher) error {
	result := r.db.WithContext(ctx).Model(v).
		Where("is_used = ?", false).
		Select("*").
		Omit("id", "created_at", "is_used", "used_date", "used_invoice_id").
		Updates(v)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
