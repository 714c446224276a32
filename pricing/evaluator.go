package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day format used for every stored date.
const DateLayout = "2006-01-02"

type DiscountType string

const (
	Percentage DiscountType = "percentage"
	Fixed      DiscountType = "fixed"
)

type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusActive     Status = "ACTIVE"
	StatusExpired    Status = "EXPIRED"
	StatusPaused     Status = "PAUSED"
	StatusUsed       Status = "USED"
)

type Reason string

const (
	ReasonNotFound      Reason = "NOT_FOUND"
	ReasonNotApplicable Reason = "NOT_APPLICABLE"
	ReasonBelowMinimum  Reason = "BELOW_MINIMUM"
	ReasonNotActive     Reason = "NOT_ACTIVE"
	ReasonUsageLimit    Reason = "USAGE_LIMIT_REACHED"
)

// Terms describe how much a voucher or promotion takes off a purchase.
type Terms struct {
	Type        DiscountType
	Value       decimal.Decimal
	MinPurchase decimal.Decimal
	// MaxDiscount of zero means uncapped.
	MaxDiscount decimal.Decimal
}

// Discount returns the capped discount for purchase. Minimum purchase is not
// checked here.
func (t Terms) Discount(purchase decimal.Decimal) decimal.Decimal {
	var raw decimal.Decimal
	switch t.Type {
	case Percentage:
		raw = purchase.Mul(ClampPercent(t.Value)).Div(hundred)
	case Fixed:
		raw = t.Value
	default:
		return decimal.Zero
	}
	if raw.IsNegative() {
		return decimal.Zero
	}
	if t.MaxDiscount.IsPositive() && raw.GreaterThan(t.MaxDiscount) {
		return t.MaxDiscount
	}
	return raw
}

// Window is an inclusive range of calendar days. A zero bound is open.
type Window struct {
	From  time.Time
	Until time.Time
}

// ParseWindow reads two YYYY-MM-DD strings; empty strings leave a bound open.
func ParseWindow(from, until string) (Window, error) {
	var w Window
	var err error
	if from != "" {
		if w.From, err = time.Parse(DateLayout, from); err != nil {
			return Window{}, err
		}
	}
	if until != "" {
		if w.Until, err = time.Parse(DateLayout, until); err != nil {
			return Window{}, err
		}
	}
	return w, nil
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (w Window) status(now time.Time) Status {
	d := day(now)
	if !w.From.IsZero() && d.Before(day(w.From)) {
		return StatusNotStarted
	}
	if !w.Until.IsZero() && d.After(day(w.Until)) {
		return StatusExpired
	}
	return StatusActive
}

// Contains reports whether now falls on a day inside the window.
func (w Window) Contains(now time.Time) bool {
	return w.status(now) == StatusActive
}

// PromotionStatus derives the display status of a promotion.
func PromotionStatus(now time.Time, w Window, isActive bool) Status {
	if !isActive {
		return StatusPaused
	}
	return w.status(now)
}

// VoucherStatus derives the display status of a voucher.
func VoucherStatus(now time.Time, w Window, isUsed bool) Status {
	if isUsed {
		return StatusUsed
	}
	return w.status(now)
}

// Result is the outcome of evaluating a voucher or promotion.
type Result struct {
	Valid          bool            `json:"valid"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Reason         Reason          `json:"reason,omitempty"`
	Message        string          `json:"message,omitempty"`
}

func reject(r Reason, msg string) Result {
	return Result{DiscountAmount: decimal.Zero, Reason: r, Message: msg}
}

// VoucherRule is a voucher as seen by the evaluator.
type VoucherRule struct {
	Terms      Terms
	Window     Window
	IsUsed     bool
	CustomerID *uint
	GroupID    *uint
	// GroupMember is whether the buying customer belongs to GroupID.
	GroupMember bool
	// PromotionStatus is the status of the linked promotion, empty when unlinked.
	PromotionStatus Status
}

// EvaluateVoucher checks v against a purchase. A nil v is an unknown code.
func EvaluateVoucher(v *VoucherRule, now time.Time, purchase decimal.Decimal, customerID *uint) Result {
	if v == nil || v.IsUsed || !v.Window.Contains(now) {
		return reject(ReasonNotFound, "Mã voucher không tồn tại, đã sử dụng hoặc hết hạn")
	}
	if v.CustomerID != nil && (customerID == nil || *customerID != *v.CustomerID) {
		return reject(ReasonNotApplicable, "Voucher không áp dụng cho khách hàng này")
	}
	if v.GroupID != nil && !v.GroupMember {
		return reject(ReasonNotApplicable, "Khách hàng không thuộc nhóm được áp dụng voucher")
	}
	if v.PromotionStatus != "" && v.PromotionStatus != StatusActive {
		return reject(ReasonNotApplicable, "Chương trình khuyến mãi của voucher không còn hiệu lực")
	}
	if purchase.LessThan(v.Terms.MinPurchase) {
		return reject(ReasonBelowMinimum, fmt.Sprintf("Đơn hàng tối thiểu %s", FormatVND(v.Terms.MinPurchase)))
	}
	return Result{Valid: true, DiscountAmount: v.Terms.Discount(purchase)}
}

// PromotionRule is a promotion as seen by the evaluator.
type PromotionRule struct {
	Terms    Terms
	Window   Window
	IsActive bool
	// UsageLimit of zero means unlimited.
	UsageLimit int
	UsedCount  int
}

// EvaluatePromotion checks p against a purchase.
func EvaluatePromotion(p PromotionRule, now time.Time, purchase decimal.Decimal) Result {
	if PromotionStatus(now, p.Window, p.IsActive) != StatusActive {
		return reject(ReasonNotActive, "Chương trình khuyến mãi không hoạt động")
	}
	if p.UsageLimit > 0 && p.UsedCount >= p.UsageLimit {
		return reject(ReasonUsageLimit, "Chương trình khuyến mãi đã hết lượt sử dụng")
	}
	if purchase.LessThan(p.Terms.MinPurchase) {
		return reject(ReasonBelowMinimum, fmt.Sprintf("Đơn hàng tối thiểu %s", FormatVND(p.Terms.MinPurchase)))
	}
	return Result{Valid: true, DiscountAmount: p.Terms.Discount(purchase)}
}
