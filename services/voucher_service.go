package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"carwash-backend/models"
	"carwash-backend/pricing"
	"carwash-backend/repository"
	"carwash-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VoucherService struct {
	db  *gorm.DB
	now Clock
}

func NewVoucherService(db *gorm.DB, now Clock) *VoucherService {
	if now == nil {
		now = time.Now
	}
	return &VoucherService{db: db, now: now}
}

// Validate evaluates code against a purchase. An unknown code is a NOT_FOUND
// result, not an error.
func (s *VoucherService) Validate(ctx context.Context, code string, purchase decimal.Decimal, customerID *uint) (pricing.Result, *models.Voucher, error) {
	return evaluateVoucher(ctx, s.db, code, purchase, customerID, s.now())
}

// Use redeems a voucher for an invoice. Only ACTIVE vouchers can be used.
func (s *VoucherService) Use(ctx context.Context, id, invoiceID uint) (*models.Voucher, error) {
	var out *models.Voucher
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		vouchers := repository.NewVoucherRepository(tx)
		v, err := vouchers.Get(ctx, id)
		if err != nil {
			return appErr(err, "voucher")
		}
		now := s.now()
		v.RefreshStatus(now)
		switch v.Status {
		case pricing.StatusUsed:
			return utils.ConflictError("Voucher đã được sử dụng")
		case pricing.StatusActive:
		default:
			return utils.ValidationError("Voucher chưa đến hạn hoặc đã hết hạn")
		}

		if _, err := repository.NewInvoiceRepository(tx).Get(ctx, invoiceID); err != nil {
			return appErr(err, "hóa đơn")
		}
		if err := vouchers.Redeem(ctx, id, invoiceID, now); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return utils.ConflictError("Voucher đã được sử dụng")
			}
			return err
		}
		out, err = vouchers.Get(ctx, id)
		return err
	})
	return out, err
}

// PrepareCode normalizes the code, generates one when empty and checks uniqueness.
func (s *VoucherService) PrepareCode(ctx context.Context, v *models.Voucher) error {
	v.Code = strings.ToUpper(strings.TrimSpace(v.Code))
	if v.Code == "" {
		v.Code = utils.GenerateVoucherCode()
	}
	taken, err := repository.NewVoucherRepository(s.db).CodeTaken(ctx, v.Code, v.ID)
	if err != nil {
		return err
	}
	if taken {
		return utils.ConflictError("Mã voucher đã tồn tại")
	}
	return nil
}

func evaluateVoucher(ctx context.Context, db *gorm.DB, code string, purchase decimal.Decimal, customerID *uint, now time.Time) (pricing.Result, *models.Voucher, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	v, err := repository.NewVoucherRepository(db).FindByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return pricing.EvaluateVoucher(nil, now, purchase, customerID), nil, nil
	}
	if err != nil {
		return pricing.Result{}, nil, err
	}

	rule := v.Rule()
	if v.CustomerGroupID != nil && customerID != nil {
		if rule.GroupMember, err = repository.IsMember(ctx, db, *v.CustomerGroupID, *customerID); err != nil {
			return pricing.Result{}, nil, err
		}
	}
	if v.PromotionID != nil {
		promo, err := repository.NewPromotionRepository(db).Get(ctx, *v.PromotionID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			// the origin promotion was deleted; the voucher stands on its own
		case err != nil:
			return pricing.Result{}, nil, err
		default:
			promo.RefreshStatus(now)
			rule.PromotionStatus = promo.Status
		}
	}
	return pricing.EvaluateVoucher(rule, now, purchase, customerID), v, nil
}
