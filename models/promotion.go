package models

import (
	"time"

	"carwash-backend/pricing"

	"gorm.io/gorm"
)

type Promotion struct {
	Base
	Name              string   `gorm:"not null" json:"name"`
	Description       string   `json:"description"`
	DiscountType      string   `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue     float64  `gorm:"type:decimal(14,2);not null" json:"discount_value"`
	MinPurchaseAmount float64  `gorm:"type:decimal(14,2);default:0" json:"min_purchase_amount"`
	MaxDiscountAmount *float64 `gorm:"type:decimal(14,2)" json:"max_discount_amount"`
	StartDate         string   `gorm:"type:varchar(10);not null" json:"start_date"`
	EndDate           string   `gorm:"type:varchar(10);not null" json:"end_date"`
	IsActive          bool     `gorm:"not null" json:"is_active"`
	UsageLimit        *int     `json:"usage_limit"`
	UsedCount         int      `gorm:"default:0" json:"used_count"`

	// Status is derived on load; it is never stored.
	Status pricing.Status `gorm:"-" json:"status"`
}

func (p *Promotion) AfterFind(tx *gorm.DB) error {
	p.RefreshStatus(time.Now())
	return nil
}

func (p *Promotion) RefreshStatus(now time.Time) {
	p.Status = pricing.PromotionStatus(now, window(p.StartDate, p.EndDate), p.IsActive)
}

// Rule converts the row into evaluator input.
func (p *Promotion) Rule() pricing.PromotionRule {
	r := pricing.PromotionRule{
		Terms:     terms(p.DiscountType, p.DiscountValue, p.MinPurchaseAmount, p.MaxDiscountAmount),
		Window:    window(p.StartDate, p.EndDate),
		IsActive:  p.IsActive,
		UsedCount: p.UsedCount,
	}
	if p.UsageLimit != nil {
		r.UsageLimit = *p.UsageLimit
	}
	return r
}

func terms(kind string, value, minPurchase float64, maxDiscount *float64) pricing.Terms {
	t := pricing.Terms{
		Type:        pricing.DiscountType(kind),
		Value:       pricing.Coalesce(value),
		MinPurchase: pricing.Coalesce(minPurchase),
	}
	if maxDiscount != nil {
		t.MaxDiscount = pricing.Coalesce(*maxDiscount)
	}
	return t
}

// window ignores malformed dates; writes are validated before they reach the table.
func window(from, until string) pricing.Window {
	w, err := pricing.ParseWindow(from, until)
	if err != nil {
		return pricing.Window{}
	}
	return w
}
