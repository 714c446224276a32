package models

type Invoice struct {
	Base
	InvoiceNumber string `gorm:"uniqueIndex;not null" json:"invoice_number"`
	CustomerID    *uint  `gorm:"index" json:"customer_id"`
	CarCategoryID *uint  `gorm:"index" json:"car_category_id"`
	VehiclePlate  string `json:"vehicle_plate"`
	InvoiceDate   string `gorm:"type:varchar(10);index" json:"invoice_date"`

	Subtotal        float64 `gorm:"type:decimal(14,2);not null" json:"subtotal"`
	IncludeVAT      bool    `json:"include_vat"`
	VATAmount       float64 `gorm:"type:decimal(14,2);default:0" json:"vat_amount"`
	DiscountPercent float64 `gorm:"type:decimal(5,2);default:0" json:"discount_percent"`
	VoucherID       *uint   `gorm:"index" json:"voucher_id"`
	PromotionID     *uint   `gorm:"index" json:"promotion_id"`
	ExtraDiscount   float64 `gorm:"type:decimal(14,2);default:0" json:"extra_discount"`
	DiscountAmount  float64 `gorm:"type:decimal(14,2);default:0" json:"discount_amount"`
	Total           float64 `gorm:"type:decimal(14,2);not null" json:"total"`
	PaymentMethod   string  `gorm:"default:'cash'" json:"payment_method"`
	Note            string  `json:"note"`

	Services []InvoiceService `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"services,omitempty"`
	Products []InvoiceProduct `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
}

type InvoiceService struct {
	Base
	InvoiceID   uint    `gorm:"index;not null" json:"invoice_id"`
	ServiceID   uint    `gorm:"index;not null" json:"service_id"`
	ServiceName string  `gorm:"not null" json:"service_name"`
	Quantity    int     `gorm:"default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"type:decimal(14,2);not null" json:"unit_price"`
	TotalPrice  float64 `gorm:"type:decimal(14,2);not null" json:"total_price"`
}

type InvoiceProduct struct {
	Base
	InvoiceID   uint    `gorm:"index;not null" json:"invoice_id"`
	InventoryID uint    `gorm:"index;not null" json:"inventory_id"`
	ProductName string  `gorm:"not null" json:"product_name"`
	Quantity    int     `gorm:"default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"type:decimal(14,2);not null" json:"unit_price"`
	TotalPrice  float64 `gorm:"type:decimal(14,2);not null" json:"total_price"`
}
