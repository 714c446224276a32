// controllers/invoice.go
package controllers

import (
	"fmt"
	"net/http"

	"carwash-backend/config"
	"carwash-backend/logger"
	"carwash-backend/models"
	"carwash-backend/repository"
	"carwash-backend/services"
	"carwash-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InvoiceController struct {
	db       *gorm.DB
	invoices *services.InvoiceService
	shop     config.Shop
}

func NewInvoiceController(db *gorm.DB, invoices *services.InvoiceService, shop config.Shop) *InvoiceController {
	return &InvoiceController{db: db, invoices: invoices, shop: shop}
}

// List accepts ?from, ?to (YYYY-MM-DD) and ?customer_id.
func (ic *InvoiceController) List(c *gin.Context) {
	filter := repository.InvoiceFilter{From: c.Query("from"), To: c.Query("to")}
	for _, d := range []string{filter.From, filter.To} {
		if d != "" && !utils.ValidateDate(d) {
			utils.RespondAppError(c, utils.ValidationError("Ngày không hợp lệ (YYYY-MM-DD)"))
			return
		}
	}
	if id := optionalUint(c.Query("customer_id")); id != nil {
		filter.CustomerID = *id
	}

	rows, err := repository.NewInvoiceRepository(ic.db).ListJoined(c.Request.Context(), filter)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (ic *InvoiceController) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	inv, err := repository.NewInvoiceRepository(ic.db).GetWithLines(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err, "hóa đơn")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// Preview prices a draft without saving it.
func (ic *InvoiceController) Preview(c *gin.Context) {
	var input services.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	quote, err := ic.invoices.Preview(c.Request.Context(), &input)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (ic *InvoiceController) Create(c *gin.Context) {
	var input services.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	inv, err := ic.invoices.Create(c.Request.Context(), &input)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (ic *InvoiceController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := ic.invoices.Delete(c.Request.Context(), id); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa hóa đơn"})
}

// PDF streams the invoice as an A4 PDF attachment.
func (ic *InvoiceController) PDF(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	inv, err := repository.NewInvoiceRepository(ic.db).GetWithLines(ctx, id)
	if err != nil {
		respondErr(c, err, "hóa đơn")
		return
	}

	var customer *models.Customer
	if inv.CustomerID != nil {
		customer, err = repository.NewCustomerRepository(ic.db).Get(ctx, *inv.CustomerID)
		if err != nil {
			// the customer may have been deleted since
			customer = nil
		}
	}

	doc, err := services.RenderInvoicePDF(inv, customer, ic.shop)
	if err != nil {
		logger.Log.Error("failed to render invoice pdf", zap.Uint("invoice_id", id), zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Không thể tạo file PDF")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", inv.InvoiceNumber))
	c.Data(http.StatusOK, "application/pdf", doc)
}
