package repository

import (
	"context"

	"carwash-backend/models"

	"gorm.io/gorm"
)

// DueOilChange is an oil change with the contact details needed to remind.
type DueOilChange struct {
	models.OilChange
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

type OilChangeRepository struct {
	*Repository[models.OilChange]
}

func NewOilChangeRepository(db *gorm.DB) *OilChangeRepository {
	return &OilChangeRepository{New[models.OilChange](db)}
}

// Due lists unreminded oil changes whose next change date is on or before until.
func (r *OilChangeRepository) Due(ctx context.Context, until string) ([]DueOilChange, error) {
	var rows []DueOilChange
	err := r.db.WithContext(ctx).
		Table("oil_changes AS o").
		Select("o.*, c.name AS customer_name, c.phone AS customer_phone").
		Joins("JOIN customers c ON c.id = o.customer_id").
		Where("o.reminded = ? AND o.next_change_date <> '' AND o.next_change_date <= ?", false, until).
		Order("o.next_change_date").
		Scan(&rows).Error
	return rows, err
}

func (r *OilChangeRepository) MarkReminded(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.OilChange{}).Where("id = ?", id).Update("reminded", true).Error
}

func (r *OilChangeRepository) LogReminder(ctx context.Context, log *models.ReminderLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *OilChangeRepository) ReminderLogs(ctx context.Context, limit int) ([]models.ReminderLog, error) {
	var logs []models.ReminderLog
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
