package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"carwash-backend/models"
	"carwash-backend/repository"
	"carwash-backend/utils"

	"gorm.io/gorm"
)

const timeLayout = "15:04:05"

const (
	SwipeCheckIn  = "check_in"
	SwipeCheckOut = "check_out"
)

// SwipeResult is what the card reader shows after a swipe.
type SwipeResult struct {
	Action     string             `json:"action"`
	Employee   *models.Employee   `json:"employee"`
	Attendance *models.Attendance `json:"attendance"`
}

type AttendanceService struct {
	db  *gorm.DB
	now Clock
}

func NewAttendanceService(db *gorm.DB, now Clock) *AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceService{db: db, now: now}
}

// Swipe checks the card holder in, or out when today's record is still open.
func (s *AttendanceService) Swipe(ctx context.Context, cardID string) (*SwipeResult, error) {
	cardID = strings.TrimSpace(cardID)
	if cardID == "" {
		return nil, utils.ValidationError("Thiếu trường bắt buộc: card_id")
	}

	var result *SwipeResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewAttendanceRepository(tx)
		emp, err := repo.EmployeeByCard(ctx, cardID)
		if err != nil {
			return appErr(err, "nhân viên với thẻ này")
		}
		if emp.Status == "inactive" {
			return utils.ValidationError("Nhân viên đã nghỉ việc")
		}

		now := s.now()
		today := now.Format(utils.DateLayout)
		clock := now.Format(timeLayout)

		open, err := repo.OpenRecord(ctx, emp.ID, today)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			rec := &models.Attendance{EmployeeID: emp.ID, Date: today, CheckIn: clock}
			if err := repo.Create(ctx, rec); err != nil {
				return err
			}
			result = &SwipeResult{Action: SwipeCheckIn, Employee: emp, Attendance: rec}
			return nil
		case err != nil:
			return err
		}

		open.CheckOut = clock
		open.HoursWorked = hoursBetween(open.CheckIn, clock)
		if err := repo.Save(ctx, open); err != nil {
			return err
		}
		result = &SwipeResult{Action: SwipeCheckOut, Employee: emp, Attendance: open}
		return nil
	})
	return result, err
}

// Stats summarizes a YYYY-MM month.
func (s *AttendanceService) Stats(ctx context.Context, month string) ([]repository.AttendanceStat, error) {
	if month == "" {
		month = s.now().Format("2006-01")
	}
	from, to, err := utils.MonthRange(month)
	if err != nil {
		return nil, utils.ValidationError("Tháng không hợp lệ (YYYY-MM)")
	}
	return repository.NewAttendanceRepository(s.db).Stats(ctx, from, to)
}

func hoursBetween(from, to string) float64 {
	start, err1 := time.Parse(timeLayout, from)
	end, err2 := time.Parse(timeLayout, to)
	if err1 != nil || err2 != nil || end.Before(start) {
		return 0
	}
	return math.Round(end.Sub(start).Hours()*100) / 100
}
