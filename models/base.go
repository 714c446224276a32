package models

import "time"

// Base carries the autoincrement id and timestamps shared by every table.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) GetID() uint   { return b.ID }
func (b *Base) SetID(id uint) { b.ID = id }

// Identifiable is implemented by every model through Base.
type Identifiable interface {
	GetID() uint
	SetID(id uint)
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&CarCategory{},
		&Customer{},
		&CustomerVehicle{},
		&Service{},
		&ProductCategory{},
		&Supplier{},
		&Batch{},
		&LandedCost{},
		&InventoryItem{},
		&Promotion{},
		&Voucher{},
		&Invoice{},
		&InvoiceService{},
		&InvoiceProduct{},
		&OilChange{},
		&ReminderLog{},
		&CustomerGroup{},
		&CustomerGroupMember{},
		&Employee{},
		&Attendance{},
		&Expense{},
		&PurchaseOrder{},
		&SalesOrder{},
	}
}
