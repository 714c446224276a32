package repository

import (
	"context"
	"errors"
	"strings"

	"carwash-backend/models"

	"gorm.io/gorm"
)

// InventoryRow is an inventory item with its category name and batch code.
type InventoryRow struct {
	models.InventoryItem
	CategoryName string `json:"category_name"`
	BatchCode    string `json:"batch_code"`
}

type InventoryRepository struct {
	*Repository[models.InventoryItem]
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{New[models.InventoryItem](db)}
}

func (r *InventoryRepository) WithTx(tx *gorm.DB) *InventoryRepository {
	return NewInventoryRepository(tx)
}

func (r *InventoryRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("inventory AS i").
		Select("i.*, COALESCE(pc.name, '') AS category_name, COALESCE(b.batch_code, '') AS batch_code").
		Joins("LEFT JOIN product_categories pc ON pc.id = i.category_id").
		Joins("LEFT JOIN batches b ON b.id = i.batch_id")
}

func (r *InventoryRepository) ListJoined(ctx context.Context) ([]InventoryRow, error) {
	var rows []InventoryRow
	err := r.joined(ctx).Order("i.name").Scan(&rows).Error
	return rows, err
}

func (r *InventoryRepository) GetJoined(ctx context.Context, id uint) (*InventoryRow, error) {
	var rows []InventoryRow
	if err := r.joined(ctx).Where("i.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// LowStock lists items at or below their reorder point.
func (r *InventoryRepository) LowStock(ctx context.Context) ([]InventoryRow, error) {
	var rows []InventoryRow
	err := r.joined(ctx).Where("i.quantity <= i.reorder_point").Order("i.quantity").Scan(&rows).Error
	return rows, err
}

// CategoryID looks a category up by name and creates it when missing.
func (r *InventoryRepository) CategoryID(ctx context.Context, name string) (*uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var cat models.ProductCategory
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cat = models.ProductCategory{Name: name}
		err = r.db.WithContext(ctx).Create(&cat).Error
	}
	if err != nil {
		return nil, err
	}
	return &cat.ID, nil
}

// TakeStock subtracts qty from an item, failing with ErrConflict when stock is short.
func (r *InventoryRepository) TakeStock(ctx context.Context, id uint, qty float64) error {
	result := r.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// ReturnStock adds qty back to an item.
func (r *InventoryRepository) ReturnStock(ctx context.Context, id uint, qty float64) error {
	return r.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", qty)).Error
}

// BatchRow is a batch with its supplier name.
type BatchRow struct {
	models.Batch
	SupplierName string `json:"supplier_name"`
}

type BatchRepository struct {
	*Repository[models.Batch]
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{New[models.Batch](db)}
}

func (r *BatchRepository) ListJoined(ctx context.Context) ([]BatchRow, error) {
	var rows []BatchRow
	err := r.db.WithContext(ctx).
		Table("batches AS b").
		Select("b.*, COALESCE(s.name, '') AS supplier_name").
		Joins("LEFT JOIN suppliers s ON s.id = b.supplier_id").
		Order("b.import_date DESC, b.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *BatchRepository) LandedCosts(ctx context.Context, batchID uint) ([]models.LandedCost, error) {
	var costs []models.LandedCost
	err := r.db.WithContext(ctx).Where("batch_id = ?", batchID).Order("id").Find(&costs).Error
	return costs, err
}

func (r *BatchRepository) AddLandedCost(ctx context.Context, cost *models.LandedCost) error {
	return r.db.WithContext(ctx).Create(cost).Error
}

// Delete removes the batch and its landed costs; inventory rows keep their data
// but lose the batch link.
func (r *BatchRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("batch_id = ?", id).Delete(&models.LandedCost{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.InventoryItem{}).Where("batch_id = ?", id).Update("batch_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Batch{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
