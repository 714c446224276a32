// models/reminder_log.go
package models

import (
	"time"
)

// OilChange records a service visit and when the next change falls due.
type OilChange struct {
	Base
	CustomerID     uint   `gorm:"index;not null" json:"customer_id" binding:"required"`
	VehiclePlate   string `json:"vehicle_plate"`
	ChangeDate     string `gorm:"type:varchar(10);not null" json:"change_date" binding:"required,isodate"`
	Mileage        int    `json:"mileage" binding:"min=0"`
	NextChangeDate string `gorm:"type:varchar(10);index" json:"next_change_date" binding:"omitempty,isodate"`
	NextMileage    int    `json:"next_mileage" binding:"min=0"`
	OilType        string `json:"oil_type"`
	Notes          string `json:"notes"`
	Reminded       bool   `gorm:"index" json:"reminded"`
}

type ReminderLog struct {
	Base
	OilChangeID  uint      `gorm:"index;not null" json:"oil_change_id"`
	CustomerID   uint      `gorm:"index;not null" json:"customer_id"`
	Phone        string    `gorm:"type:varchar(20)" json:"phone"`
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"error_message"`
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // sms
	SentAt       time.Time `json:"sent_at"`
}
