package controllers

import (
	"net/http"
	"strings"
	"time"

	"carwash-backend/models"
	"carwash-backend/pricing"
	"carwash-backend/repository"
	"carwash-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PromotionController struct {
	*Resource[models.Promotion, *models.Promotion]
	promotions *repository.PromotionRepository
	now        func() time.Time
}

func NewPromotionController(db *gorm.DB) *PromotionController {
	pc := &PromotionController{
		Resource:   NewResource[models.Promotion](db, "chương trình khuyến mãi"),
		promotions: repository.NewPromotionRepository(db),
		now:        time.Now,
	}
	pc.Check = pc.check
	pc.Store = pc.promotions.UpdateTerms
	return pc
}

func (pc *PromotionController) Register(g *gin.RouterGroup) {
	g.GET("/active", pc.Active)
	pc.Resource.Register(g)
	g.POST("/:id/toggle", pc.Toggle)
}

// Active lists promotions running today.
func (pc *PromotionController) Active(c *gin.Context) {
	promos, err := pc.promotions.Active(c.Request.Context(), pc.now())
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, promos)
}

// Toggle pauses an active promotion or resumes a paused one.
func (pc *PromotionController) Toggle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	promo, err := pc.promotions.Toggle(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err, "chương trình khuyến mãi")
		return
	}
	c.JSON(http.StatusOK, promo)
}

// check validates the body. used_count starts at zero and is never taken from it.
func (pc *PromotionController) check(c *gin.Context, p *models.Promotion) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return utils.ValidationError("Thiếu trường bắt buộc: name")
	}
	if err := validateTerms(p.DiscountType, p.DiscountValue, p.MinPurchaseAmount, p.MaxDiscountAmount); err != nil {
		return err
	}
	if err := validateWindow(p.StartDate, p.EndDate, "start_date", "end_date", true); err != nil {
		return err
	}
	if p.UsageLimit != nil && *p.UsageLimit < 0 {
		return utils.ValidationError("Giá trị của usage_limit phải lớn hơn hoặc bằng 0")
	}

	// updates never write used_count, see PromotionRepository.UpdateTerms
	if p.ID == 0 {
		p.UsedCount = 0
	}
	return nil
}

// validateTerms checks the discount fields shared by promotions and vouchers.
func validateTerms(kind string, value, minPurchase float64, maxDiscount *float64) error {
	switch pricing.DiscountType(kind) {
	case pricing.Percentage:
		if value <= 0 || value > 100 {
			return utils.ValidationError("Phần trăm giảm giá phải trong khoảng 0-100")
		}
	case pricing.Fixed:
		if value <= 0 {
			return utils.ValidationError("Giá trị của discount_value phải lớn hơn 0")
		}
	default:
		return utils.ValidationError("Giá trị của discount_type phải là một trong: percentage fixed")
	}
	if minPurchase < 0 {
		return utils.ValidationError("Giá trị của min_purchase_amount phải lớn hơn hoặc bằng 0")
	}
	if maxDiscount != nil && *maxDiscount < 0 {
		return utils.ValidationError("Giá trị của max_discount_amount phải lớn hơn hoặc bằng 0")
	}
	return nil
}

// validateWindow checks an ISO date range. Bounds may be empty unless required.
func validateWindow(from, until, fromField, untilField string, required bool) error {
	for _, f := range []struct{ value, field string }{{from, fromField}, {until, untilField}} {
		if f.value == "" {
			if required {
				return utils.ValidationError("Thiếu trường bắt buộc: " + f.field)
			}
			continue
		}
		if !utils.ValidateDate(f.value) {
			return utils.ValidationError("Ngày không hợp lệ (YYYY-MM-DD): " + f.field)
		}
	}
	if from != "" && until != "" && from > until {
		return utils.ValidationError("Ngày bắt đầu phải trước ngày kết thúc")
	}
	return nil
}
