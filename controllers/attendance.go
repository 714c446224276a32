package controllers

import (
	"net/http"
	"time"

	"carwash-backend/repository"
	"carwash-backend/services"
	"carwash-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SwipeInput struct {
	CardID string `json:"card_id" binding:"required"`
}

type AttendanceController struct {
	db         *gorm.DB
	attendance *services.AttendanceService
}

func NewAttendanceController(db *gorm.DB, attendance *services.AttendanceService) *AttendanceController {
	return &AttendanceController{db: db, attendance: attendance}
}

// List returns the records for ?date (default today).
func (ac *AttendanceController) List(c *gin.Context) {
	date := c.DefaultQuery("date", time.Now().Format(utils.DateLayout))
	if !utils.ValidateDate(date) {
		utils.RespondAppError(c, utils.ValidationError("Ngày không hợp lệ (YYYY-MM-DD): date"))
		return
	}
	rows, err := repository.NewAttendanceRepository(ac.db).ForDate(c.Request.Context(), date)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Swipe toggles check-in/check-out for the card holder.
func (ac *AttendanceController) Swipe(c *gin.Context) {
	var input SwipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	result, err := ac.attendance.Swipe(c.Request.Context(), input.CardID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (ac *AttendanceController) Stats(c *gin.Context) {
	stats, err := ac.attendance.Stats(c.Request.Context(), c.Query("month"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
