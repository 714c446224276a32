package repository

import (
	"context"

	"carwash-backend/models"

	"gorm.io/gorm"
)

// InvoiceRow is an invoice with the customer's name and phone.
type InvoiceRow struct {
	models.Invoice
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// InvoiceFilter narrows ListJoined. Empty fields are ignored.
type InvoiceFilter struct {
	From       string
	To         string
	CustomerID uint
}

type InvoiceRepository struct {
	*Repository[models.Invoice]
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{New[models.Invoice](db)}
}

func (r *InvoiceRepository) WithTx(tx *gorm.DB) *InvoiceRepository {
	return NewInvoiceRepository(tx)
}

func (r *InvoiceRepository) ListJoined(ctx context.Context, f InvoiceFilter) ([]InvoiceRow, error) {
	q := r.db.WithContext(ctx).
		Table("invoices AS inv").
		Select("inv.*, COALESCE(c.name, '') AS customer_name, COALESCE(c.phone, '') AS customer_phone").
		Joins("LEFT JOIN customers c ON c.id = inv.customer_id")
	if f.From != "" {
		q = q.Where("inv.invoice_date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("inv.invoice_date <= ?", f.To)
	}
	if f.CustomerID != 0 {
		q = q.Where("inv.customer_id = ?", f.CustomerID)
	}

	var rows []InvoiceRow
	err := q.Order("inv.invoice_date DESC, inv.id DESC").Scan(&rows).Error
	return rows, err
}

// GetWithLines loads an invoice with its service and product lines.
func (r *InvoiceRepository) GetWithLines(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&inv, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &inv, nil
}

// NumberExists reports whether an invoice number is already taken.
func (r *InvoiceRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).Where("invoice_number = ?", number).Count(&count).Error
	return count > 0, err
}

// Delete removes the invoice and its lines.
func (r *InvoiceRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("invoice_id = ?", id).Delete(&models.InvoiceService{}).Error; err != nil {
		return err
	}
	if err := db.Where("invoice_id = ?", id).Delete(&models.InvoiceProduct{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.Invoice{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
