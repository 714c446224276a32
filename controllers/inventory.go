package controllers

import (
	"errors"
	"net/http"
	"strings"

	"carwash-backend/logger"
	"carwash-backend/models"
	"carwash-backend/pricing"
	"carwash-backend/repository"
	"carwash-backend/services"
	"carwash-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InventoryInput is the create/update body. Category is free text and is
// looked up or created; InvoiceImage may be a base64 data URL.
type InventoryInput struct {
	Name         string          `json:"name" binding:"required"`
	Category     string          `json:"category"`
	Type         string          `json:"type" binding:"omitempty,oneof=consumable equipment"`
	Quantity     pricing.Number  `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitPrice    pricing.Number  `json:"unit_price"`
	ReorderPoint pricing.Number  `json:"reorder_point"`
	UsageRate    *pricing.Number `json:"usage_rate"`
	BatchID      *uint           `json:"batch_id"`
	ImportDate   string          `json:"import_date" binding:"omitempty,isodate"`
	InvoiceImage *string         `json:"invoice_image"`
}

type InventoryController struct {
	db     *gorm.DB
	images *services.ImageStore
}

func NewInventoryController(db *gorm.DB, images *services.ImageStore) *InventoryController {
	return &InventoryController{db: db, images: images}
}

func (ic *InventoryController) List(c *gin.Context) {
	rows, err := repository.NewInventoryRepository(ic.db).ListJoined(c.Request.Context())
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (ic *InventoryController) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	row, err := repository.NewInventoryRepository(ic.db).GetJoined(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err, "sản phẩm")
		return
	}
	c.JSON(http.StatusOK, row)
}

func (ic *InventoryController) LowStock(c *gin.Context) {
	rows, err := repository.NewInventoryRepository(ic.db).LowStock(c.Request.Context())
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (ic *InventoryController) Create(c *gin.Context) {
	var input InventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	ic.save(c, &models.InventoryItem{}, &input, http.StatusCreated)
}

func (ic *InventoryController) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input InventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	item, err := repository.NewInventoryRepository(ic.db).Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err, "sản phẩm")
		return
	}
	ic.save(c, item, &input, http.StatusOK)
}

func (ic *InventoryController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	repo := repository.NewInventoryRepository(ic.db)
	item, err := repo.Get(ctx, id)
	if err != nil {
		respondErr(c, err, "sản phẩm")
		return
	}
	if err := repo.Delete(ctx, id); err != nil {
		respondErr(c, err, "sản phẩm")
		return
	}
	ic.removeImage(item.InvoiceImage)
	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa sản phẩm"})
}

// save applies input to item and writes it with the category resolved and any
// inline image moved to the image store.
func (ic *InventoryController) save(c *gin.Context, item *models.InventoryItem, input *InventoryInput, status int) {
	ctx := c.Request.Context()
	repo := repository.NewInventoryRepository(ic.db)

	if input.BatchID != nil {
		if _, err := repository.NewBatchRepository(ic.db).Get(ctx, *input.BatchID); err != nil {
			respondErr(c, err, "lô hàng")
			return
		}
	}

	oldImage := item.InvoiceImage
	newImage := oldImage
	if input.InvoiceImage != nil {
		switch v := strings.TrimSpace(*input.InvoiceImage); {
		case services.IsDataURL(v):
			name, err := ic.images.SaveDataURL(v)
			if err != nil {
				if errors.Is(err, services.ErrInvalidImage) {
					utils.RespondAppError(c, utils.ValidationError("Ảnh hóa đơn không hợp lệ"))
				} else {
					utils.RespondAppError(c, err)
				}
				return
			}
			newImage = name
		case v == "":
			newImage = ""
		}
	}

	err := ic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		categoryID, err := txRepo.CategoryID(ctx, input.Category)
		if err != nil {
			return err
		}
		if categoryID != nil {
			item.CategoryID = categoryID
		}

		item.Name = strings.TrimSpace(input.Name)
		item.Type = input.Type
		if item.Type == "" {
			item.Type = "consumable"
		}
		item.Quantity = float64(input.Quantity)
		item.Unit = input.Unit
		item.UnitPrice = float64(input.UnitPrice)
		item.ReorderPoint = float64(input.ReorderPoint)
		item.UsageRate = nil
		if input.UsageRate != nil {
			rate := float64(*input.UsageRate)
			item.UsageRate = &rate
		}
		item.BatchID = input.BatchID
		item.ImportDate = input.ImportDate
		item.InvoiceImage = newImage

		if item.ID == 0 {
			return txRepo.Create(ctx, item)
		}
		return txRepo.Save(ctx, item)
	})
	if err != nil {
		if newImage != oldImage {
			ic.removeImage(newImage)
		}
		utils.RespondAppError(c, err)
		return
	}
	if newImage != oldImage {
		ic.removeImage(oldImage)
	}

	row, err := repo.GetJoined(ctx, item.ID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(status, row)
}

func (ic *InventoryController) removeImage(name string) {
	if err := ic.images.Remove(name); err != nil {
		logger.Log.Warn("failed to remove image", zap.String("name", name), zap.Error(err))
	}
}
