// controllers/report.go
package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"carwash-backend/config"
	"carwash-backend/logger"
	"carwash-backend/services"
	"carwash-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportController handles all reporting functions
type ReportController struct {
	reports *services.ReportService
	shop    config.Shop
}

func NewReportController(reports *services.ReportService, shop config.Shop) *ReportController {
	return &ReportController{reports: reports, shop: shop}
}

// Summary returns month/quarter/year growth plus the ?from..?to breakdown.
func (rc *ReportController) Summary(c *gin.Context) {
	summary, err := rc.reports.Analytics(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Export downloads the ?from..?to report as an xlsx workbook.
func (rc *ReportController) Export(c *gin.Context) {
	report, err := rc.reports.Range(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := services.WriteReportWorkbook(&buf, report, rc.shop); err != nil {
		logger.Log.Error("failed to write report workbook", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Không thể tạo file Excel")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=bao_cao_%s_%s.xlsx", report.From, report.To))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
