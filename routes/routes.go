package routes

import (
	"net/http"
	"time"

	"carwash-backend/config"
	"carwash-backend/controllers"
	"carwash-backend/models"
	"carwash-backend/services"
	"carwash-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer needs; main builds it once.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Images    *services.ImageStore
	Invoices  *services.InvoiceService
	Vouchers  *services.VoucherService
	Reminders *services.ReminderService
	Reports   *services.ReportService
	Staff     *services.AttendanceService
}

func SetupRouter(d Deps) *gin.Engine {
	cfg := d.Config
	utils.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(config.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(config.PerformanceLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Static("/uploads", d.Images.Dir())

	auth := controllers.NewAuthController(d.DB, cfg.JWTSecret, cfg.JWTExpiry)
	loginLimiter := utils.NewIPRateLimiter(cfg.LoginRatePerSec, cfg.LoginBurst)
	r.POST("/api/login", loginLimiter.Middleware(), auth.Login)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(cfg.JWTSecret))
	{
		api.GET("/me", auth.Me)

		profileController := controllers.NewProfileController(d.DB)
		profile := api.Group("/profile")
		{
			profile.GET("", auth.Me)
			profile.PUT("", profileController.UpdateProfile)
			profile.PUT("/password", profileController.ChangePassword)
		}

		// Customer routes
		customerController := controllers.NewCustomerController(d.DB)
		customers := api.Group("/customers")
		{
			customers.GET("/lookup", customerController.Lookup)
			customers.POST("", customerController.Create)
			customers.GET("", customerController.List)
			customers.GET("/:id", customerController.Get)
			customers.PUT("/:id", customerController.Update)
			customers.DELETE("/:id", customerController.Delete)
			customers.GET("/:id/vehicles", customerController.Vehicles)
			customers.POST("/:id/vehicles", customerController.AddVehicle)
		}

		// Catalog routes
		serviceController := controllers.NewServiceController(d.DB)
		serviceRoutes := api.Group("/services")
		serviceRoutes.GET("/prices", serviceController.Prices)
		controllers.NewResource[models.Service](d.DB, "dịch vụ").Register(serviceRoutes)
		controllers.NewResource[models.CarCategory](d.DB, "loại xe").Register(api.Group("/car-categories"))

		productCategories := controllers.NewResource[models.ProductCategory](d.DB, "danh mục sản phẩm")
		api.GET("/product-categories", productCategories.List)
		api.POST("/product-categories", productCategories.Create)

		// Stock routes
		controllers.NewResource[models.Supplier](d.DB, "nhà cung cấp").Register(api.Group("/suppliers"))
		controllers.NewBatchController(d.DB).Register(api.Group("/batches"))

		inventoryController := controllers.NewInventoryController(d.DB, d.Images)
		inventory := api.Group("/inventory")
		{
			inventory.GET("/low-stock", inventoryController.LowStock)
			inventory.GET("", inventoryController.List)
			inventory.POST("", inventoryController.Create)
			inventory.GET("/:id", inventoryController.Get)
			inventory.PUT("/:id", inventoryController.Update)
			inventory.DELETE("/:id", inventoryController.Delete)
		}

		// Invoice routes
		invoiceController := controllers.NewInvoiceController(d.DB, d.Invoices, cfg.Shop)
		invoices := api.Group("/invoices")
		{
			invoices.POST("/preview", invoiceController.Preview)
			invoices.POST("", invoiceController.Create)
			invoices.GET("", invoiceController.List)
			invoices.GET("/:id", invoiceController.Get)
			invoices.GET("/:id/pdf", invoiceController.PDF)
			invoices.DELETE("/:id", invoiceController.Delete)
		}

		// Discount routes
		controllers.NewPromotionController(d.DB).Register(api.Group("/promotions"))
		controllers.NewVoucherController(d.DB, d.Vouchers).Register(api.Group("/vouchers"))
		controllers.NewGroupController(d.DB).Register(api.Group("/customer-groups"))

		// Staff routes
		controllers.NewResource[models.Employee](d.DB, "nhân viên").Register(api.Group("/employees"))
		attendanceController := controllers.NewAttendanceController(d.DB, d.Staff)
		attendance := api.Group("/attendance")
		{
			attendance.GET("", attendanceController.List)
			attendance.POST("/swipe", attendanceController.Swipe)
			attendance.GET("/stats", attendanceController.Stats)
		}

		// Finance routes
		controllers.NewResource[models.Expense](d.DB, "chi phí").Register(api.Group("/expenses"))
		controllers.NewResource[models.PurchaseOrder](d.DB, "đơn nhập hàng").Register(api.Group("/purchase-orders"))
		controllers.NewResource[models.SalesOrder](d.DB, "đơn bán hàng").Register(api.Group("/sales-orders"))

		// Reminder routes
		oilChangeController := controllers.NewOilChangeController(d.DB, d.Reminders, cfg.ReminderDaysAhead)
		oilChangeController.Register(api.Group("/oil-changes"))
		api.GET("/reminders/logs", oilChangeController.Logs)
		api.POST("/reminders/run", oilChangeController.Run)

		// Reports routes
		reportController := controllers.NewReportController(d.Reports, cfg.Shop)
		api.GET("/reports/summary", reportController.Summary)
		api.GET("/reports/export", reportController.Export)

		// Dashboard routes
		api.GET("/dashboard", controllers.NewDashboardController(d.Reports).Overview)
	}

	return r
}
