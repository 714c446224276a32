package models

type CustomerGroup struct {
	Base
	Name         string  `gorm:"uniqueIndex;not null" json:"name" binding:"required"`
	Description  string  `json:"description"`
	DiscountRate float64 `gorm:"type:decimal(5,2);default:0" json:"discount_rate" binding:"min=0,max=100"`
}

type CustomerGroupMember struct {
	Base
	GroupID    uint `gorm:"uniqueIndex:idx_group_member;not null" json:"group_id"`
	CustomerID uint `gorm:"uniqueIndex:idx_group_member;not null" json:"customer_id"`
}
