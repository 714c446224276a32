// controllers/service.go
package controllers

import (
	"net/http"

	"carwash-backend/models"
	"carwash-backend/pricing"
	"carwash-backend/repository"
	"carwash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServicePrice is a service priced for one car category.
type ServicePrice struct {
	ServiceID  uint            `json:"service_id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Duration   int             `json:"duration"`
	BasePrice  decimal.Decimal `json:"base_price"`
	Multiplier decimal.Decimal `json:"multiplier"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

type ServiceController struct {
	db *gorm.DB
}

func NewServiceController(db *gorm.DB) *ServiceController {
	return &ServiceController{db: db}
}

// Prices lists every service with its effective unit price for ?car_category_id.
// Without a category the multiplier is 1.
func (sc *ServiceController) Prices(c *gin.Context) {
	ctx := c.Request.Context()
	multiplier := decimal.NewFromInt(1)

	if raw := c.Query("car_category_id"); raw != "" {
		id := optionalUint(raw)
		if id == nil {
			utils.RespondAppError(c, utils.ValidationError("ID không hợp lệ"))
			return
		}
		cat, err := repository.New[models.CarCategory](sc.db).Get(ctx, *id)
		if err != nil {
			respondErr(c, err, "loại xe")
			return
		}
		multiplier = pricing.Coalesce(cat.ServiceMultiplier)
	}

	services, err := repository.New[models.Service](sc.db).List(ctx)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	prices := make([]ServicePrice, 0, len(services))
	for _, s := range services {
		base := pricing.Coalesce(s.BasePrice)
		prices = append(prices, ServicePrice{
			ServiceID:  s.ID,
			Name:       s.Name,
			Category:   s.Category,
			Duration:   s.Duration,
			BasePrice:  base,
			Multiplier: multiplier,
			UnitPrice:  pricing.EffectiveUnitPrice(base, multiplier),
		})
	}
	c.JSON(http.StatusOK, prices)
}
