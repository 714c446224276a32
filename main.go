package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carwash-backend/config"
	"carwash-backend/logger"
	"carwash-backend/routes"
	"carwash-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.Log.Fatal("database", zap.Error(err))
	}
	if err := config.Migrate(db, cfg.DBReset); err != nil {
		logger.Log.Fatal("migrate", zap.Error(err))
	}
	if err := config.EnsureAdmin(db, cfg.AdminPassword); err != nil {
		logger.Log.Fatal("admin account", zap.Error(err))
	}
	if cfg.SeedDemoData {
		if err := config.SeedDemoData(db); err != nil {
			logger.Log.Fatal("seed demo data", zap.Error(err))
		}
	}

	images, err := services.NewImageStore(cfg.UploadDir)
	if err != nil {
		logger.Log.Fatal("image store", zap.Error(err))
	}
	reminders := services.NewReminderService(db, services.SenderFromConfig(cfg), cfg.ReminderDaysAhead, cfg.Shop, time.Now)
	scheduler, err := services.NewScheduler(db, reminders, cfg.ReminderCron)
	if err != nil {
		logger.Log.Fatal("scheduler", zap.String("spec", cfg.ReminderCron), zap.Error(err))
	}
	scheduler.Start()

	r := routes.SetupRouter(routes.Deps{
		Config:    cfg,
		DB:        db,
		Images:    images,
		Invoices:  services.NewInvoiceService(db, time.Now),
		Vouchers:  services.NewVoucherService(db, time.Now),
		Reminders: reminders,
		Reports:   services.NewReportService(db, time.Now),
		Staff:     services.NewAttendanceService(db, time.Now),
	})
	printRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("server shutdown", zap.Error(err))
	}
	scheduler.Stop(ctx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		logger.Log.Debug("route", zap.String("method", route.Method), zap.String("path", route.Path))
	}
}
