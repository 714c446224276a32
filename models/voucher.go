package models

import (
	"time"

	"carwash-backend/pricing"

	"gorm.io/gorm"
)

type Voucher struct {
	Base
	Code              string   `gorm:"uniqueIndex;not null" json:"code"`
	PromotionID       *uint    `gorm:"index" json:"promotion_id"`
	CustomerID        *uint    `gorm:"index" json:"customer_id"`
	CustomerGroupID   *uint    `gorm:"index" json:"customer_group_id"`
	DiscountType      string   `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue     float64  `gorm:"type:decimal(14,2);not null" json:"discount_value"`
	MinPurchaseAmount float64  `gorm:"type:decimal(14,2);default:0" json:"min_purchase_amount"`
	MaxDiscountAmount *float64 `gorm:"type:decimal(14,2)" json:"max_discount_amount"`
	ValidFrom         string   `gorm:"type:varchar(10)" json:"valid_from"`
	ValidUntil        string   `gorm:"type:varchar(10)" json:"valid_until"`
	IsUsed            bool     `gorm:"not null;index" json:"is_used"`
	UsedDate          *string  `gorm:"type:varchar(10)" json:"used_date"`
	UsedInvoiceID     *uint    `json:"used_invoice_id"`

	Status pricing.Status `gorm:"-" json:"status"`
}

func (v *Voucher) AfterFind(tx *gorm.DB) error {
	v.RefreshStatus(time.Now())
	return nil
}

func (v *Voucher) RefreshStatus(now time.Time) {
	v.Status = pricing.VoucherStatus(now, window(v.ValidFrom, v.ValidUntil), v.IsUsed)
}

// Rule converts the row into evaluator input. Group membership and the linked
// promotion's status are filled in by the caller.
func (v *Voucher) Rule() *pricing.VoucherRule {
	return &pricing.VoucherRule{
		Terms:      terms(v.DiscountType, v.DiscountValue, v.MinPurchaseAmount, v.MaxDiscountAmount),
		Window:     window(v.ValidFrom, v.ValidUntil),
		IsUsed:     v.IsUsed,
		CustomerID: v.CustomerID,
		GroupID:    v.CustomerGroupID,
	}
}
