package controllers

import (
	"net/http"

	"carwash-backend/services"
	"carwash-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	reports *services.ReportService
}

func NewDashboardController(reports *services.ReportService) *DashboardController {
	return &DashboardController{reports: reports}
}

// Overview returns today's figures, stock alerts, staff on shift and the latest invoices.
func (dc *DashboardController) Overview(c *gin.Context) {
	overview, err := dc.reports.Dashboard(c.Request.Context())
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
