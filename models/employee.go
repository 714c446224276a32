package models

type Employee struct {
	Base
	Name     string  `gorm:"not null" json:"name" binding:"required"`
	Phone    string  `json:"phone" binding:"omitempty,phone"`
	Position string  `json:"position"`
	CardID   *string `gorm:"uniqueIndex" json:"card_id"`
	Salary   float64 `gorm:"type:decimal(14,2);default:0" json:"salary" binding:"min=0"`
	HireDate string  `gorm:"type:varchar(10)" json:"hire_date" binding:"omitempty,isodate"`
	Status   string  `gorm:"type:varchar(20);default:'active'" json:"status" binding:"omitempty,oneof=active inactive"`
}

// Attendance is one employee's check-in/check-out for a day.
type Attendance struct {
	Base
	EmployeeID  uint    `gorm:"index;not null" json:"employee_id"`
	Date        string  `gorm:"type:varchar(10);index;not null" json:"date"`
	CheckIn     string  `gorm:"type:varchar(8)" json:"check_in"`
	CheckOut    string  `gorm:"type:varchar(8)" json:"check_out"`
	HoursWorked float64 `gorm:"default:0" json:"hours_worked"`
}

func (Attendance) TableName() string { return "attendance" }
