package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"carwash-backend/logger"
	"carwash-backend/models"
	"carwash-backend/pricing"
	"carwash-backend/repository"
	"carwash-backend/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceLineInput struct {
	ServiceID uint           `json:"service_id" binding:"required"`
	Quantity  pricing.Number `json:"quantity"`
	// Selected defaults to true when omitted.
	Selected *bool `json:"selected"`
}

type ProductLineInput struct {
	InventoryID uint           `json:"inventory_id" binding:"required"`
	Quantity    pricing.Number `json:"quantity"`
}

type InvoiceInput struct {
	CustomerID    *uint  `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone" binding:"omitempty,phone"`
	CarCategoryID *uint  `json:"car_category_id"`
	VehiclePlate  string `json:"vehicle_plate"`
	InvoiceDate   string `json:"invoice_date" binding:"omitempty,isodate"`

	Services []ServiceLineInput `json:"services" binding:"dive"`
	Products []ProductLineInput `json:"products" binding:"dive"`

	IncludeVAT      bool            `json:"include_vat"`
	DiscountPercent *pricing.Number `json:"discount_percent" binding:"omitempty,min=0,max=100"`
	VoucherCode     string          `json:"voucher_code"`
	PromotionID     *uint           `json:"promotion_id"`
	PaymentMethod   string          `json:"payment_method" binding:"omitempty,oneof=cash card transfer"`
	Note            string          `json:"note"`
}

// QuoteLine is one priced line of a draft.
type QuoteLine struct {
	ServiceID   uint    `json:"service_id,omitempty"`
	InventoryID uint    `json:"inventory_id,omitempty"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// Quote is a priced invoice draft.
type Quote struct {
	pricing.Breakdown
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Multiplier      decimal.Decimal `json:"multiplier"`
	Services        []QuoteLine     `json:"services"`
	Products        []QuoteLine     `json:"products"`
	Voucher         *pricing.Result `json:"voucher,omitempty"`
	Promotion       *pricing.Result `json:"promotion,omitempty"`

	serviceRows []models.InvoiceService
	productRows []models.InvoiceProduct
	customer    *models.Customer
	voucher     *models.Voucher
	promotion   *models.Promotion
}

type InvoiceService struct {
	db  *gorm.DB
	now Clock
}

func NewInvoiceService(db *gorm.DB, now Clock) *InvoiceService {
	if now == nil {
		now = time.Now
	}
	return &InvoiceService{db: db, now: now}
}

// Preview prices a draft without writing anything.
func (s *InvoiceService) Preview(ctx context.Context, in *InvoiceInput) (*Quote, error) {
	return s.quote(ctx, s.db.WithContext(ctx), in, false)
}

// Create prices and stores an invoice. Lines, stock, voucher redemption,
// promotion usage and customer totals are written in one transaction.
func (s *InvoiceService) Create(ctx context.Context, in *InvoiceInput) (*models.Invoice, error) {
	var created *models.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q, err := s.quote(ctx, tx, in, true)
		if err != nil {
			return err
		}
		if q.Voucher != nil && !q.Voucher.Valid {
			return utils.ValidationError(q.Voucher.Message)
		}
		if q.Promotion != nil && !q.Promotion.Valid {
			return utils.ValidationError(q.Promotion.Message)
		}

		now := s.now()
		invoices := repository.NewInvoiceRepository(tx)
		number, err := s.nextNumber(ctx, invoices, now)
		if err != nil {
			return err
		}

		date := in.InvoiceDate
		if date == "" {
			date = now.Format(utils.DateLayout)
		}
		payment := in.PaymentMethod
		if payment == "" {
			payment = "cash"
		}

		inv := &models.Invoice{
			InvoiceNumber:   number,
			CarCategoryID:   in.CarCategoryID,
			VehiclePlate:    strings.TrimSpace(in.VehiclePlate),
			InvoiceDate:     date,
			Subtotal:        money(q.Subtotal),
			IncludeVAT:      in.IncludeVAT,
			VATAmount:       money(q.VATAmount),
			DiscountPercent: money(q.DiscountPercent),
			ExtraDiscount:   money(q.ExtraDiscount),
			DiscountAmount:  money(q.DiscountAmount),
			Total:           money(q.Total),
			PaymentMethod:   payment,
			Note:            in.Note,
			Services:        q.serviceRows,
			Products:        q.productRows,
		}
		if q.customer != nil {
			inv.CustomerID = &q.customer.ID
		}
		if q.voucher != nil {
			inv.VoucherID = &q.voucher.ID
		}
		if q.promotion != nil {
			inv.PromotionID = &q.promotion.ID
		}
		if err := invoices.Create(ctx, inv); err != nil {
			return err
		}

		inventory := repository.NewInventoryRepository(tx)
		for _, p := range q.productRows {
			if err := inventory.TakeStock(ctx, p.InventoryID, float64(p.Quantity)); err != nil {
				if errors.Is(err, repository.ErrConflict) {
					return utils.ConflictError(fmt.Sprintf("Không đủ tồn kho: %s", p.ProductName))
				}
				return err
			}
		}

		if q.voucher != nil {
			if err := repository.NewVoucherRepository(tx).Redeem(ctx, q.voucher.ID, inv.ID, now); err != nil {
				if errors.Is(err, repository.ErrConflict) {
					return utils.ConflictError("Voucher đã được sử dụng")
				}
				return err
			}
		}
		if q.promotion != nil {
			if err := repository.NewPromotionRepository(tx).IncrementUsage(ctx, q.promotion.ID); err != nil {
				if errors.Is(err, repository.ErrConflict) {
					return utils.ConflictError("Chương trình khuyến mãi đã hết lượt sử dụng")
				}
				return err
			}
		}
		if q.customer != nil {
			if err := repository.NewCustomerRepository(tx).RecordVisit(ctx, q.customer.ID, inv.Total, date); err != nil {
				return err
			}
		}

		created = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("invoice created",
		zap.String("invoice_number", created.InvoiceNumber),
		zap.Float64("total", created.Total),
	)
	return created, nil
}

// Delete removes an invoice, returning stock, customer totals and promotion
// usage. A redeemed voucher stays used.
func (s *InvoiceService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoices := repository.NewInvoiceRepository(tx)
		inv, err := invoices.GetWithLines(ctx, id)
		if err != nil {
			return appErr(err, "hóa đơn")
		}

		inventory := repository.NewInventoryRepository(tx)
		for _, p := range inv.Products {
			if err := inventory.ReturnStock(ctx, p.InventoryID, float64(p.Quantity)); err != nil {
				return err
			}
		}
		if inv.CustomerID != nil {
			if err := repository.NewCustomerRepository(tx).ReverseVisit(ctx, *inv.CustomerID, inv.Total); err != nil {
				return err
			}
		}
		if inv.PromotionID != nil {
			if err := repository.NewPromotionRepository(tx).ReleaseUsage(ctx, *inv.PromotionID); err != nil {
				return err
			}
		}
		return invoices.Delete(ctx, id)
	})
}

func (s *InvoiceService) quote(ctx context.Context, db *gorm.DB, in *InvoiceInput, persistCustomer bool) (*Quote, error) {
	q := &Quote{
		Multiplier: decimal.NewFromInt(1),
		Services:   []QuoteLine{},
		Products:   []QuoteLine{},
	}

	customer, err := s.findCustomer(ctx, db, in, persistCustomer)
	if err != nil {
		return nil, err
	}
	q.customer = customer

	if in.CarCategoryID != nil {
		cat, err := repository.New[models.CarCategory](db).Get(ctx, *in.CarCategoryID)
		if err != nil {
			return nil, appErr(err, "loại xe")
		}
		q.Multiplier = pricing.Coalesce(cat.ServiceMultiplier)
	}

	var lines []pricing.Line
	services := repository.New[models.Service](db)
	for _, sl := range in.Services {
		svc, err := services.Get(ctx, sl.ServiceID)
		if err != nil {
			return nil, appErr(err, "dịch vụ")
		}
		unit := pricing.EffectiveUnitPrice(pricing.Coalesce(svc.BasePrice), q.Multiplier)
		qty := int(sl.Quantity)
		selected := sl.Selected == nil || *sl.Selected
		lines = append(lines, pricing.Line{UnitPrice: unit, Quantity: qty, Selected: selected})
		if !selected || qty <= 0 {
			continue
		}
		line := QuoteLine{
			ServiceID:  svc.ID,
			Name:       svc.Name,
			Quantity:   qty,
			UnitPrice:  money(unit),
			TotalPrice: money(pricing.LineTotal(unit, qty)),
		}
		q.Services = append(q.Services, line)
		q.serviceRows = append(q.serviceRows, models.InvoiceService{
			ServiceID:   line.ServiceID,
			ServiceName: line.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TotalPrice:  line.TotalPrice,
		})
	}

	inventory := repository.NewInventoryRepository(db)
	for _, pl := range in.Products {
		qty := int(pl.Quantity)
		if qty <= 0 {
			continue
		}
		item, err := inventory.Get(ctx, pl.InventoryID)
		if err != nil {
			return nil, appErr(err, "sản phẩm")
		}
		unit := pricing.Coalesce(item.UnitPrice)
		lines = append(lines, pricing.Line{UnitPrice: unit, Quantity: qty, Selected: true})
		line := QuoteLine{
			InventoryID: item.ID,
			Name:        item.Name,
			Quantity:    qty,
			UnitPrice:   money(unit),
			TotalPrice:  money(pricing.LineTotal(unit, qty)),
		}
		q.Products = append(q.Products, line)
		q.productRows = append(q.productRows, models.InvoiceProduct{
			InventoryID: line.InventoryID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TotalPrice:  line.TotalPrice,
		})
	}
	if len(q.Services)+len(q.Products) == 0 {
		return nil, utils.ValidationError("Hóa đơn phải có ít nhất một dịch vụ hoặc sản phẩm")
	}

	var explicit, rate *decimal.Decimal
	if in.DiscountPercent != nil {
		d := in.DiscountPercent.Decimal()
		explicit = &d
	}
	var customerID *uint
	if customer != nil {
		r := pricing.Coalesce(customer.DiscountRate)
		rate = &r
		customerID = &customer.ID
	}
	q.DiscountPercent = pricing.EffectiveDiscountPercent(rate, explicit)

	draft := pricing.Draft{Lines: lines, IncludeVAT: in.IncludeVAT, DiscountPercent: q.DiscountPercent}
	// vouchers and promotions see the amount due after the percent discount
	purchase := pricing.Calculate(draft).Total
	now := s.now()

	if code := strings.TrimSpace(in.VoucherCode); code != "" {
		res, v, err := evaluateVoucher(ctx, db, code, purchase, customerID, now)
		if err != nil {
			return nil, err
		}
		q.Voucher = &res
		if res.Valid {
			q.voucher = v
			draft.ExtraDiscount = draft.ExtraDiscount.Add(res.DiscountAmount)
		}
	}
	if in.PromotionID != nil {
		promo, err := repository.NewPromotionRepository(db).Get(ctx, *in.PromotionID)
		if err != nil {
			return nil, appErr(err, "chương trình khuyến mãi")
		}
		res := pricing.EvaluatePromotion(promo.Rule(), now, purchase)
		q.Promotion = &res
		if res.Valid {
			q.promotion = promo
			draft.ExtraDiscount = draft.ExtraDiscount.Add(res.DiscountAmount)
		}
	}

	q.Breakdown = pricing.Calculate(draft)
	return q, nil
}

// findCustomer resolves the buyer by id, then by phone. With create set, an
// unknown phone becomes a new customer.
func (s *InvoiceService) findCustomer(ctx context.Context, db *gorm.DB, in *InvoiceInput, create bool) (*models.Customer, error) {
	customers := repository.NewCustomerRepository(db)
	if in.CustomerID != nil {
		c, err := customers.Get(ctx, *in.CustomerID)
		if err != nil {
			return nil, appErr(err, "khách hàng")
		}
		return c, nil
	}

	phone := strings.TrimSpace(in.CustomerPhone)
	if phone == "" {
		return nil, nil
	}
	c, err := customers.FindByPhone(ctx, phone)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if !create {
		return nil, nil
	}

	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		name = phone
	}
	c = &models.Customer{Name: name, Phone: phone}
	if err := customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *InvoiceService) nextNumber(ctx context.Context, invoices *repository.InvoiceRepository, now time.Time) (string, error) {
	for i := 0; i < 5; i++ {
		number := "HD-" + now.Format("20060102") + "-" + utils.GenerateRandomString(6)
		exists, err := invoices.NumberExists(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", errors.New("could not allocate invoice number")
}
