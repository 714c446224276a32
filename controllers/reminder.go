// controllers/reminder.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"carwash-backend/models"
	"carwash-backend/repository"
	"carwash-backend/services"
	"carwash-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultOilInterval = 3 // months

// OilChangeController serves oil-change records and the SMS reminders sent for them.
type OilChangeController struct {
	*Resource[models.OilChange, *models.OilChange]
	oilChanges *repository.OilChangeRepository
	customers  *repository.CustomerRepository
	reminders  *services.ReminderService
	daysAhead  int
}

func NewOilChangeController(db *gorm.DB, reminders *services.ReminderService, daysAhead int) *OilChangeController {
	oc := &OilChangeController{
		Resource:   NewResource[models.OilChange](db, "lịch thay dầu"),
		oilChanges: repository.NewOilChangeRepository(db),
		customers:  repository.NewCustomerRepository(db),
		reminders:  reminders,
		daysAhead:  daysAhead,
	}
	oc.Check = oc.check
	return oc
}

func (oc *OilChangeController) Register(g *gin.RouterGroup) {
	g.GET("/due", oc.Due)
	oc.Resource.Register(g)
}

// Due lists unreminded oil changes due within ?days (default REMINDER_DAYS_AHEAD).
func (oc *OilChangeController) Due(c *gin.Context) {
	days := oc.daysAhead
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.RespondAppError(c, utils.ValidationError("Giá trị của days phải lớn hơn hoặc bằng 0"))
			return
		}
		days = n
	}
	until := utils.FormatDate(time.Now().AddDate(0, 0, days))
	rows, err := oc.oilChanges.Due(c.Request.Context(), until)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Logs returns the latest reminder attempts (?limit, default 100).
func (oc *OilChangeController) Logs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	logs, err := oc.oilChanges.ReminderLogs(c.Request.Context(), limit)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// Run sends due reminders now instead of waiting for the scheduler.
func (oc *OilChangeController) Run(c *gin.Context) {
	run, err := oc.reminders.SendDueReminders(c.Request.Context())
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

// check fills the next change date and re-arms the reminder when it moves.
func (oc *OilChangeController) check(c *gin.Context, o *models.OilChange) error {
	ctx := c.Request.Context()
	if _, err := oc.customers.Get(ctx, o.CustomerID); err != nil {
		return utils.ValidationError("Khách hàng không tồn tại")
	}
	if o.NextChangeDate == "" {
		changed, err := utils.ParseDate(o.ChangeDate)
		if err != nil {
			return utils.ValidationError("Ngày không hợp lệ (YYYY-MM-DD): change_date")
		}
		o.NextChangeDate = utils.FormatDate(changed.AddDate(0, defaultOilInterval, 0))
	}
	if o.NextChangeDate < o.ChangeDate {
		return utils.ValidationError("Ngày thay dầu tiếp theo phải sau ngày thay dầu")
	}

	if o.ID == 0 {
		o.Reminded = false
		return nil
	}
	stored, err := oc.oilChanges.Get(ctx, o.ID)
	if err != nil {
		return err
	}
	o.Reminded = stored.Reminded && stored.NextChangeDate == o.NextChangeDate
	return nil
}
