package models

type Service struct {
	Base
	Name        string  `gorm:"not null" json:"name" binding:"required"`
	Description string  `json:"description"`
	BasePrice   float64 `gorm:"type:decimal(14,2);not null" json:"base_price" binding:"min=0"`
	Duration    int     `json:"duration"` // in minutes
	Category    string  `gorm:"default:'Rửa xe'" json:"category"`
}

// CarCategory scales service prices per vehicle class.
type CarCategory struct {
	Base
	Name              string  `gorm:"uniqueIndex;not null" json:"name" binding:"required"`
	Description       string  `json:"description"`
	ServiceMultiplier float64 `gorm:"type:decimal(6,3);not null;default:1" json:"service_multiplier" binding:"required,gt=0"`
}
