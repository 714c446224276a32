package services

import (
	"context"
	"math"
	"time"

	"carwash-backend/repository"
	"carwash-backend/utils"

	"gorm.io/gorm"
)

// RangeReport covers one date range.
type RangeReport struct {
	From         string                    `json:"from"`
	To           string                    `json:"to"`
	Revenue      float64                   `json:"revenue"`
	Invoices     int64                     `json:"invoices"`
	Expenses     float64                   `json:"expenses"`
	Profit       float64                   `json:"profit"`
	NewCustomers int64                     `json:"new_customers"`
	TopServices  []repository.ServiceStat  `json:"top_services"`
	TopCustomers []repository.CustomerStat `json:"top_customers"`
	Daily        []repository.DailyRevenue `json:"daily"`
}

// Analytics compares the current month, quarter and year with the previous ones.
type Analytics struct {
	MonthRevenue   float64      `json:"month_revenue"`
	MonthGrowth    float64      `json:"month_growth"`
	QuarterRevenue float64      `json:"quarter_revenue"`
	QuarterGrowth  float64      `json:"quarter_growth"`
	YearRevenue    float64      `json:"year_revenue"`
	YearGrowth     float64      `json:"year_growth"`
	Range          *RangeReport `json:"range"`

	QuickStats *repository.QuickStats `json:"quick_stats"`
}

type Dashboard struct {
	TodayRevenue     float64                 `json:"today_revenue"`
	TodayInvoices    int64                   `json:"today_invoices"`
	MonthRevenue     float64                 `json:"month_revenue"`
	LowStockCount    int64                   `json:"low_stock_count"`
	ActivePromotions int                     `json:"active_promotions"`
	CheckedIn        int64                   `json:"checked_in"`
	RecentInvoices   []repository.InvoiceRow `json:"recent_invoices"`
}

type ReportService struct {
	db  *gorm.DB
	now Clock
}

func NewReportService(db *gorm.DB, now Clock) *ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportService{db: db, now: now}
}

// Range builds the report for [from, to]. Empty bounds default to the current month.
func (s *ReportService) Range(ctx context.Context, from, to string) (*RangeReport, error) {
	now := s.now()
	if from == "" {
		from = utils.FormatDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()))
	}
	if to == "" {
		to = utils.FormatDate(now)
	}
	if !utils.ValidateDate(from) || !utils.ValidateDate(to) {
		return nil, utils.ValidationError("Ngày không hợp lệ (YYYY-MM-DD)")
	}
	if from > to {
		return nil, utils.ValidationError("Ngày bắt đầu phải trước ngày kết thúc")
	}

	repo := repository.NewReportRepository(s.db)
	r := &RangeReport{From: from, To: to}
	var err error
	if r.Revenue, err = repo.Revenue(ctx, from, to); err != nil {
		return nil, err
	}
	if r.Invoices, err = repo.InvoiceCount(ctx, from, to); err != nil {
		return nil, err
	}
	if r.Expenses, err = repo.Expenses(ctx, from, to); err != nil {
		return nil, err
	}
	if r.NewCustomers, err = repo.NewCustomers(ctx, from, to); err != nil {
		return nil, err
	}
	if r.TopServices, err = repo.TopServices(ctx, from, to, 5); err != nil {
		return nil, err
	}
	if r.TopCustomers, err = repo.TopCustomers(ctx, from, to, 5); err != nil {
		return nil, err
	}
	if r.Daily, err = repo.Daily(ctx, from, to); err != nil {
		return nil, err
	}
	r.Profit = r.Revenue - r.Expenses
	return r, nil
}

// Analytics adds period-over-period growth to the range report.
func (s *ReportService) Analytics(ctx context.Context, from, to string) (*Analytics, error) {
	rng, err := s.Range(ctx, from, to)
	if err != nil {
		return nil, err
	}

	now := s.now()
	repo := repository.NewReportRepository(s.db)
	revenue := func(start, end time.Time) (float64, error) {
		return repo.Revenue(ctx, utils.FormatDate(start), utils.FormatDate(end))
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	quarterStart := QuarterStart(now)
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	type pair struct {
		start, end time.Time
	}
	ranges := []pair{
		{monthStart, monthStart.AddDate(0, 1, -1)},
		{monthStart.AddDate(0, -1, 0), monthStart.AddDate(0, 0, -1)},
		{quarterStart, QuarterEnd(now)},
		{quarterStart.AddDate(0, -3, 0), quarterStart.AddDate(0, 0, -1)},
		{yearStart, yearStart.AddDate(1, 0, -1)},
		{yearStart.AddDate(-1, 0, 0), yearStart.AddDate(0, 0, -1)},
	}
	quick, err := repo.QuickStats(ctx)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(ranges))
	for i, p := range ranges {
		if values[i], err = revenue(p.start, p.end); err != nil {
			return nil, err
		}
	}

	return &Analytics{
		MonthRevenue:   values[0],
		MonthGrowth:    GrowthPercentage(values[0], values[1]),
		QuarterRevenue: values[2],
		QuarterGrowth:  GrowthPercentage(values[2], values[3]),
		YearRevenue:    values[4],
		YearGrowth:     GrowthPercentage(values[4], values[5]),
		Range:          rng,
		QuickStats:     quick,
	}, nil
}

func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.now()
	today := utils.FormatDate(now)
	monthStart := utils.FormatDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()))

	repo := repository.NewReportRepository(s.db)
	d := &Dashboard{}
	var err error
	if d.TodayRevenue, err = repo.Revenue(ctx, today, today); err != nil {
		return nil, err
	}
	if d.TodayInvoices, err = repo.InvoiceCount(ctx, today, today); err != nil {
		return nil, err
	}
	if d.MonthRevenue, err = repo.Revenue(ctx, monthStart, today); err != nil {
		return nil, err
	}
	if d.LowStockCount, err = repo.LowStockCount(ctx); err != nil {
		return nil, err
	}
	active, err := repository.NewPromotionRepository(s.db).Active(ctx, now)
	if err != nil {
		return nil, err
	}
	d.ActivePromotions = len(active)
	if d.CheckedIn, err = repository.NewAttendanceRepository(s.db).CheckedIn(ctx, today); err != nil {
		return nil, err
	}

	recent, err := repository.NewInvoiceRepository(s.db).ListJoined(ctx, repository.InvoiceFilter{})
	if err != nil {
		return nil, err
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}
	d.RecentInvoices = recent
	return d, nil
}

func QuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func QuarterEnd(date time.Time) time.Time {
	return QuarterStart(date).AddDate(0, 3, -1)
}

// GrowthPercentage is the change from previous to current in percent, rounded
// to two decimals. Growth from zero counts as 100%.
func GrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return math.Round((current-previous)/previous*10000) / 100
}
