package repository

import (
	"context"

	"carwash-backend/models"

	"gorm.io/gorm"
)

type AttendanceRow struct {
	models.Attendance
	EmployeeName string `json:"employee_name"`
}

// AttendanceStat summarizes one employee over a date range.
type AttendanceStat struct {
	EmployeeID   uint    `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	DaysPresent  int     `json:"days_present"`
	TotalHours   float64 `json:"total_hours"`
}

type AttendanceRepository struct {
	*Repository[models.Attendance]
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{New[models.Attendance](db)}
}

func (r *AttendanceRepository) WithTx(tx *gorm.DB) *AttendanceRepository {
	return NewAttendanceRepository(tx)
}

func (r *AttendanceRepository) EmployeeByCard(ctx context.Context, cardID string) (*models.Employee, error) {
	var e models.Employee
	if err := r.db.WithContext(ctx).Where("card_id = ?", cardID).First(&e).Error; err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

// OpenRecord returns the employee's record for date that has no check-out yet.
func (r *AttendanceRepository) OpenRecord(ctx context.Context, employeeID uint, date string) (*models.Attendance, error) {
	var a models.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ? AND (check_out = '' OR check_out IS NULL)", employeeID, date).
		Order("id DESC").
		First(&a).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *AttendanceRepository) ForDate(ctx context.Context, date string) ([]AttendanceRow, error) {
	var rows []AttendanceRow
	err := r.db.WithContext(ctx).
		Table("attendance AS a").
		Select("a.*, COALESCE(e.name, '') AS employee_name").
		Joins("LEFT JOIN employees e ON e.id = a.employee_id").
		Where("a.date = ?", date).
		Order("a.check_in").
		Scan(&rows).Error
	return rows, err
}

// Stats counts distinct days and sums hours per employee between from and to.
func (r *AttendanceRepository) Stats(ctx context.Context, from, to string) ([]AttendanceStat, error) {
	var stats []AttendanceStat
	err := r.db.WithContext(ctx).
		Table("employees AS e").
		Select(`e.id AS employee_id, e.name AS employee_name,
			COUNT(DISTINCT a.date) AS days_present,
			COALESCE(SUM(a.hours_worked), 0) AS total_hours`).
		Joins("LEFT JOIN attendance a ON a.employee_id = e.id AND a.date BETWEEN ? AND ?", from, to).
		Group("e.id, e.name").
		Order("e.name").
		Scan(&stats).Error
	return stats, err
}

// CheckedIn counts employees with an open record on date.
func (r *AttendanceRepository) CheckedIn(ctx context.Context, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Attendance{}).
		Where("date = ? AND (check_out = '' OR check_out IS NULL)", date).
		Distinct("employee_id").
		Count(&count).Error
	return count, err
}
