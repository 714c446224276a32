package services

import (
	"context"
	"time"

	"carwash-backend/logger"
	"carwash-backend/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const lowStockSpec = "@hourly"

// Scheduler runs the background jobs: oil-change reminders and the low-stock sweep.
type Scheduler struct {
	cron      *cron.Cron
	db        *gorm.DB
	reminders *ReminderService
}

func NewScheduler(db *gorm.DB, reminders *ReminderService, reminderSpec string) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(),
		db:        db,
		reminders: reminders,
	}
	if _, err := s.cron.AddFunc(reminderSpec, s.runReminders); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(lowStockSpec, s.sweepLowStock); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Log.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for running jobs until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		logger.Log.Warn("scheduler stop timed out")
	}
}

func (s *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if _, err := s.reminders.SendDueReminders(ctx); err != nil {
		logger.Log.Error("reminder job failed", zap.Error(err))
	}
}

func (s *Scheduler) sweepLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := LowStockSweep(ctx, s.db); err != nil {
		logger.Log.Error("low stock sweep failed", zap.Error(err))
	}
}

// LowStockSweep logs every item at or below its reorder point.
func LowStockSweep(ctx context.Context, db *gorm.DB) ([]repository.InventoryRow, error) {
	rows, err := repository.NewInventoryRepository(db).LowStock(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		logger.Log.Warn("low stock",
			zap.Uint("inventory_id", r.ID),
			zap.String("name", r.Name),
			zap.Float64("quantity", r.Quantity),
			zap.Float64("reorder_point", r.ReorderPoint),
		)
	}
	return rows, nil
}
