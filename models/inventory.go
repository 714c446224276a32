package models

type ProductCategory struct {
	Base
	Name        string `gorm:"uniqueIndex;not null" json:"name" binding:"required"`
	Description string `json:"description"`
}

type Supplier struct {
	Base
	Name    string `gorm:"not null" json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"omitempty,phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type Batch struct {
	Base
	BatchCode  string `gorm:"uniqueIndex;not null" json:"batch_code" binding:"required"`
	SupplierID *uint  `gorm:"index" json:"supplier_id"`
	ImportDate string `gorm:"type:varchar(10)" json:"import_date" binding:"omitempty,isodate"`
	Notes      string `json:"notes"`

	LandedCosts []LandedCost `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE" json:"landed_costs,omitempty"`
}

// LandedCost is an extra acquisition cost (shipping, tax) attached to a batch.
type LandedCost struct {
	Base
	BatchID     uint    `gorm:"index;not null" json:"batch_id"`
	Description string  `gorm:"not null" json:"description" binding:"required"`
	Amount      float64 `gorm:"type:decimal(14,2);not null" json:"amount" binding:"min=0"`
}

type InventoryItem struct {
	Base
	Name         string   `gorm:"not null" json:"name"`
	CategoryID   *uint    `gorm:"index" json:"category_id"`
	Type         string   `gorm:"type:varchar(20);default:'consumable'" json:"type"` // consumable, equipment
	Quantity     float64  `gorm:"default:0" json:"quantity"`
	Unit         string   `json:"unit"`
	UnitPrice    float64  `gorm:"type:decimal(14,2);default:0" json:"unit_price"`
	ReorderPoint float64  `gorm:"default:0" json:"reorder_point"`
	UsageRate    *float64 `json:"usage_rate"`
	BatchID      *uint    `gorm:"index" json:"batch_id"`
	ImportDate   string   `gorm:"type:varchar(10)" json:"import_date"`
	InvoiceImage string   `json:"invoice_image"` // path under the upload dir
}

func (InventoryItem) TableName() string { return "inventory" }

// LowStock reports whether quantity is at or below the reorder point.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.ReorderPoint
}
