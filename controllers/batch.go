package controllers

import (
	"net/http"

	"carwash-backend/models"
	"carwash-backend/repository"
	"carwash-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BatchController adds the joined list, cascading delete and landed costs on
// top of the plain batch resource.
type BatchController struct {
	*Resource[models.Batch, *models.Batch]
	batches *repository.BatchRepository
}

func NewBatchController(db *gorm.DB) *BatchController {
	return &BatchController{
		Resource: NewResource[models.Batch](db, "lô hàng"),
		batches:  repository.NewBatchRepository(db),
	}
}

func (bc *BatchController) Register(g *gin.RouterGroup) {
	g.GET("", bc.List)
	g.POST("", bc.Create)
	g.GET("/:id", bc.Get)
	g.PUT("/:id", bc.Update)
	g.DELETE("/:id", bc.Delete)
	g.GET("/:id/landed-costs", bc.LandedCosts)
	g.POST("/:id/landed-costs", bc.AddLandedCost)
}

func (bc *BatchController) List(c *gin.Context) {
	rows, err := bc.batches.ListJoined(c.Request.Context())
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (bc *BatchController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := bc.batches.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err, "lô hàng")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa lô hàng"})
}

func (bc *BatchController) LandedCosts(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := bc.batches.Get(ctx, id); err != nil {
		respondErr(c, err, "lô hàng")
		return
	}
	costs, err := bc.batches.LandedCosts(ctx, id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, costs)
}

func (bc *BatchController) AddLandedCost(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var cost models.LandedCost
	if err := c.ShouldBindJSON(&cost); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	ctx := c.Request.Context()
	if _, err := bc.batches.Get(ctx, id); err != nil {
		respondErr(c, err, "lô hàng")
		return
	}

	cost.ID = 0
	cost.BatchID = id
	if err := bc.batches.AddLandedCost(ctx, &cost); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cost)
}
