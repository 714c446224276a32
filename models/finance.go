package models

type Expense struct {
	Base
	Category      string  `gorm:"not null" json:"category" binding:"required"`
	Description   string  `json:"description"`
	Amount        float64 `gorm:"type:decimal(14,2);not null" json:"amount" binding:"min=0"`
	ExpenseDate   string  `gorm:"type:varchar(10);index" json:"expense_date" binding:"required,isodate"`
	PaymentMethod string  `gorm:"default:'cash'" json:"payment_method"`
	Notes         string  `json:"notes"`
}

type PurchaseOrder struct {
	Base
	OrderNumber  string  `gorm:"uniqueIndex;not null" json:"order_number" binding:"required"`
	SupplierID   *uint   `gorm:"index" json:"supplier_id"`
	OrderDate    string  `gorm:"type:varchar(10)" json:"order_date" binding:"required,isodate"`
	ExpectedDate string  `gorm:"type:varchar(10)" json:"expected_date" binding:"omitempty,isodate"`
	TotalAmount  float64 `gorm:"type:decimal(14,2);default:0" json:"total_amount" binding:"min=0"`
	Status       string  `gorm:"type:varchar(20);default:'pending'" json:"status" binding:"omitempty,oneof=pending received cancelled"`
	Notes        string  `json:"notes"`
}

type SalesOrder struct {
	Base
	OrderNumber string  `gorm:"uniqueIndex;not null" json:"order_number" binding:"required"`
	CustomerID  *uint   `gorm:"index" json:"customer_id"`
	OrderDate   string  `gorm:"type:varchar(10)" json:"order_date" binding:"required,isodate"`
	TotalAmount float64 `gorm:"type:decimal(14,2);default:0" json:"total_amount" binding:"min=0"`
	Status      string  `gorm:"type:varchar(20);default:'pending'" json:"status" binding:"omitempty,oneof=pending completed cancelled"`
	Notes       string  `json:"notes"`
}
