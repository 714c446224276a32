package repository

import (
	"context"
	"math"

	"gorm.io/gorm"
)

type ServiceStat struct {
	ServiceName string  `json:"service_name"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

type CustomerStat struct {
	CustomerID uint    `json:"customer_id"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Visits     int     `json:"visits"`
	Spent      float64 `json:"spent"`
}

type DailyRevenue struct {
	Date     string  `json:"date"`
	Invoices int     `json:"invoices"`
	Revenue  float64 `json:"revenue"`
}

// ReportRepository runs the aggregate queries behind reports and the dashboard.
// Dates are YYYY-MM-DD text, so range filters compare strings.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Revenue(ctx context.Context, from, to string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Table("invoices").
		Select("COALESCE(SUM(total), 0)").
		Where("invoice_date BETWEEN ? AND ?", from, to).
		Scan(&total).Error
	return total, err
}

func (r *ReportRepository) InvoiceCount(ctx context.Context, from, to string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("invoices").
		Where("invoice_date BETWEEN ? AND ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *ReportRepository) Expenses(ctx context.Context, from, to string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Table("expenses").
		Select("COALESCE(SUM(amount), 0)").
		Where("expense_date BETWEEN ? AND ?", from, to).
		Scan(&total).Error
	return total, err
}

func (r *ReportRepository) TopServices(ctx context.Context, from, to string, limit int) ([]ServiceStat, error) {
	var stats []ServiceStat
	err := r.db.WithContext(ctx).
		Table("invoice_services AS s").
		Select("s.service_name, SUM(s.quantity) AS quantity, SUM(s.total_price) AS revenue").
		Joins("JOIN invoices inv ON inv.id = s.invoice_id").
		Where("inv.invoice_date BETWEEN ? AND ?", from, to).
		Group("s.service_name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}

func (r *ReportRepository) TopCustomers(ctx context.Context, from, to string, limit int) ([]CustomerStat, error) {
	var stats []CustomerStat
	err := r.db.WithContext(ctx).
		Table("invoices AS inv").
		Select("c.id AS customer_id, c.name, c.phone, COUNT(inv.id) AS visits, SUM(inv.total) AS spent").
		Joins("JOIN customers c ON c.id = inv.customer_id").
		Where("inv.invoice_date BETWEEN ? AND ?", from, to).
		Group("c.id, c.name, c.phone").
		Order("spent DESC").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}

// Daily groups invoices by day. substr keeps it portable across sqlite and postgres.
func (r *ReportRepository) Daily(ctx context.Context, from, to string) ([]DailyRevenue, error) {
	var rows []DailyRevenue
	err := r.db.WithContext(ctx).Table("invoices").
		Select("substr(invoice_date, 1, 10) AS date, COUNT(*) AS invoices, COALESCE(SUM(total), 0) AS revenue").
		Where("invoice_date BETWEEN ? AND ?", from, to).
		Group("substr(invoice_date, 1, 10)").
		Order("date").
		Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) NewCustomers(ctx context.Context, from, to string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("customers").
		Where("substr(CAST(created_at AS TEXT), 1, 10) BETWEEN ? AND ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *ReportRepository) LowStockCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("inventory").Where("quantity <= reorder_point").Count(&count).Error
	return count, err
}

// QuickStats are all-time totals shown next to the period figures.
type QuickStats struct {
	TotalCustomers int64   `json:"total_customers"`
	TotalInvoices  int64   `json:"total_invoices"`
	TotalRevenue   float64 `json:"total_revenue"`
	AvgOrderValue  float64 `json:"avg_order_value"`
}

func (r *ReportRepository) QuickStats(ctx context.Context) (*QuickStats, error) {
	var s QuickStats
	db := r.db.WithContext(ctx)
	if err := db.Table("customers").Count(&s.TotalCustomers).Error; err != nil {
		return nil, err
	}
	row := db.Table("invoices").Select("COUNT(*), COALESCE(SUM(total), 0)").Row()
	if err := row.Scan(&s.TotalInvoices, &s.TotalRevenue); err != nil {
		return nil, err
	}
	if s.TotalInvoices > 0 {
		s.AvgOrderValue = math.Round(s.TotalRevenue/float64(s.TotalInvoices)*100) / 100
	}
	return &s, nil
}
