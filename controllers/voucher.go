package controllers

import (
	"context"
	"errors"
	"net/http"

	"carwash-backend/models"
	"carwash-backend/pricing"
	"carwash-backend/repository"
	"carwash-backend/services"
	"carwash-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidateVoucherInput struct {
	Code           string         `json:"code" binding:"required"`
	PurchaseAmount pricing.Number `json:"purchase_amount"`
	CustomerID     *uint          `json:"customer_id"`
}

type UseVoucherInput struct {
	InvoiceID uint `json:"invoice_id" binding:"required"`
}

type VoucherController struct {
	*Resource[models.Voucher, *models.Voucher]
	db       *gorm.DB
	vouchers *services.VoucherService
}

func NewVoucherController(db *gorm.DB, vouchers *services.VoucherService) *VoucherController {
	vc := &VoucherController{
		Resource: NewResource[models.Voucher](db, "voucher"),
		db:       db,
		vouchers: vouchers,
	}
	vc.Check = vc.check
	vc.Store = vc.store
	return vc
}

func (vc *VoucherController) Register(g *gin.RouterGroup) {
	g.POST("/validate", vc.Validate)
	g.GET("", vc.List)
	g.POST("", vc.Create)
	g.GET("/:id", vc.Get)
	g.PUT("/:id", vc.Update)
	g.DELETE("/:id", vc.Delete)
	g.POST("/:id/use", vc.Use)
}

// Delete refuses used vouchers.
func (vc *VoucherController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	repo := repository.NewVoucherRepository(vc.db)
	v, err := repo.Get(ctx, id)
	if err != nil {
		respondErr(c, err, "voucher")
		return
	}
	if v.IsUsed {
		utils.RespondAppError(c, utils.ConflictError("Voucher đã sử dụng không thể xóa"))
		return
	}
	if err := repo.Delete(ctx, id); err != nil {
		respondErr(c, err, "voucher")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa voucher"})
}

// Validate answers whether a code applies to a purchase. Invalid codes are a
// 200 with valid=false and a reason.
func (vc *VoucherController) Validate(c *gin.Context) {
	var input ValidateVoucherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	result, v, err := vc.vouchers.Validate(c.Request.Context(), input.Code, input.PurchaseAmount.Decimal(), input.CustomerID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	resp := gin.H{
		"valid":           result.Valid,
		"discount_amount": result.DiscountAmount,
	}
	if result.Valid {
		resp["voucher"] = v
	} else {
		resp["reason"] = result.Reason
		resp["message"] = result.Message
	}
	c.JSON(http.StatusOK, resp)
}

func (vc *VoucherController) Use(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input UseVoucherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	v, err := vc.vouchers.Use(c.Request.Context(), id, input.InvoiceID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// check runs before create and update. Used vouchers are frozen and the
// redemption fields are never taken from the body.
func (vc *VoucherController) check(c *gin.Context, v *models.Voucher) error {
	ctx := c.Request.Context()
	v.IsUsed, v.UsedDate, v.UsedInvoiceID = false, nil, nil
	if v.ID != 0 {
		stored, err := repository.NewVoucherRepository(vc.db).Get(ctx, v.ID)
		if err != nil {
			return err
		}
		if stored.IsUsed {
			return utils.ConflictError("Voucher đã sử dụng không thể sửa")
		}
	}

	if v.CustomerID != nil && v.CustomerGroupID != nil {
		return utils.ValidationError("Voucher chỉ áp dụng cho một khách hàng hoặc một nhóm khách hàng")
	}
	if err := validateTerms(v.DiscountType, v.DiscountValue, v.MinPurchaseAmount, v.MaxDiscountAmount); err != nil {
		return err
	}
	if err := validateWindow(v.ValidFrom, v.ValidUntil, "valid_from", "valid_until", false); err != nil {
		return err
	}
	if v.CustomerID != nil {
		if _, err := repository.NewCustomerRepository(vc.db).Get(ctx, *v.CustomerID); err != nil {
			return utils.ValidationError("Khách hàng không tồn tại")
		}
	}
	if v.CustomerGroupID != nil {
		if _, err := repository.NewGroupRepository(vc.db).Get(ctx, *v.CustomerGroupID); err != nil {
			return utils.ValidationError("Nhóm khách hàng không tồn tại")
		}
	}
	if v.PromotionID != nil {
		if _, err := repository.NewPromotionRepository(vc.db).Get(ctx, *v.PromotionID); err != nil {
			return utils.ValidationError("Chương trình khuyến mãi không tồn tại")
		}
	}
	return vc.vouchers.PrepareCode(ctx, v)
}

// store saves an edit unless the voucher was redeemed after check read it.
func (vc *VoucherController) store(ctx context.Context, v *models.Voucher) error {
	err := repository.NewVoucherRepository(vc.db).UpdateUnused(ctx, v)
	if errors.Is(err, repository.ErrConflict) {
		return utils.ConflictError("Voucher đã sử dụng không thể sửa")
	}
	return err
}
