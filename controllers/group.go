package controllers

import (
	"net/http"

	"carwash-backend/models"
	"carwash-backend/repository"
	"carwash-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddMemberInput struct {
	CustomerID uint `json:"customer_id" binding:"required"`
}

type GroupController struct {
	*Resource[models.CustomerGroup, *models.CustomerGroup]
	groups    *repository.GroupRepository
	customers *repository.CustomerRepository
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{
		Resource:  NewResource[models.CustomerGroup](db, "nhóm khách hàng"),
		groups:    repository.NewGroupRepository(db),
		customers: repository.NewCustomerRepository(db),
	}
}

func (gc *GroupController) Register(g *gin.RouterGroup) {
	g.GET("", gc.List)
	g.POST("", gc.Create)
	g.GET("/:id", gc.Get)
	g.PUT("/:id", gc.Update)
	g.DELETE("/:id", gc.Delete)
	g.GET("/:id/members", gc.Members)
	g.POST("/:id/members", gc.AddMember)
	g.DELETE("/:id/members/:customerId", gc.RemoveMember)
}

// Delete removes the group and its memberships.
func (gc *GroupController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := gc.groups.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err, "nhóm khách hàng")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa nhóm khách hàng"})
}

func (gc *GroupController) Members(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := gc.groups.Get(ctx, id); err != nil {
		respondErr(c, err, "nhóm khách hàng")
		return
	}
	members, err := gc.groups.Members(ctx, id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (gc *GroupController) AddMember(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input AddMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	ctx := c.Request.Context()
	if _, err := gc.groups.Get(ctx, id); err != nil {
		respondErr(c, err, "nhóm khách hàng")
		return
	}
	if _, err := gc.customers.Get(ctx, input.CustomerID); err != nil {
		respondErr(c, err, "khách hàng")
		return
	}
	if err := gc.groups.AddMember(ctx, id, input.CustomerID); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"group_id": id, "customer_id": input.CustomerID})
}

func (gc *GroupController) RemoveMember(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	customerID, ok := idParam(c, "customerId")
	if !ok {
		return
	}
	if err := gc.groups.RemoveMember(c.Request.Context(), id, customerID); err != nil {
		respondErr(c, err, "thành viên")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa thành viên khỏi nhóm"})
}
