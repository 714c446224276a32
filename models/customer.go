package models

type Customer struct {
	Base
	Name         string  `gorm:"not null" json:"name" binding:"required"`
	Phone        string  `gorm:"uniqueIndex;not null" json:"phone" binding:"required,phone"`
	Email        string  `json:"email" binding:"omitempty,email"`
	DiscountRate float64 `gorm:"type:decimal(5,2);default:0" json:"discount_rate" binding:"min=0,max=100"`
	Notes        string  `json:"notes"`
	TotalVisits  int     `gorm:"default:0" json:"total_visits"`
	TotalSpent   float64 `gorm:"type:decimal(14,2);default:0" json:"total_spent"`
	LastVisit    string  `gorm:"type:varchar(10)" json:"last_visit"`

	Vehicles []CustomerVehicle `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"vehicles,omitempty"`
}

type CustomerVehicle struct {
	Base
	CustomerID    uint   `gorm:"index;not null" json:"customer_id"`
	LicensePlate  string `gorm:"not null" json:"license_plate" binding:"required"`
	Brand         string `json:"brand"`
	Model         string `json:"model"`
	Color         string `json:"color"`
	CarCategoryID *uint  `gorm:"index" json:"car_category_id"`
}
