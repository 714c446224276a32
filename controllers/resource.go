package controllers

import (
	"context"
	"net/http"

	"carwash-backend/repository"
	"carwash-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// entity is a model pointer whose id can be forced by the handler.
type entity[T any] interface {
	*T
	GetID() uint
	SetID(id uint)
}

// Resource serves plain list/get/create/update/delete for one model. Check,
// when set, runs after binding and before every write. Store, when set,
// replaces the full-row save on update.
type Resource[T any, PT entity[T]] struct {
	repo  *repository.Repository[T]
	name  string
	Check func(c *gin.Context, item *T) error
	Store func(ctx context.Context, item *T) error
}

func NewResource[T any, PT entity[T]](db *gorm.DB, name string) *Resource[T, PT] {
	return &Resource[T, PT]{repo: repository.New[T](db), name: name}
}

// Register mounts the five CRUD routes on g.
func (r *Resource[T, PT]) Register(g *gin.RouterGroup) {
	g.GET("", r.List)
	g.POST("", r.Create)
	g.GET("/:id", r.Get)
	g.PUT("/:id", r.Update)
	g.DELETE("/:id", r.Delete)
}

func (r *Resource[T, PT]) List(c *gin.Context) {
	items, err := r.repo.List(c.Request.Context())
	if err != nil {
		respondErr(c, err, r.name)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (r *Resource[T, PT]) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := r.repo.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err, r.name)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r *Resource[T, PT]) Create(c *gin.Context) {
	item := new(T)
	if err := c.ShouldBindJSON(item); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	PT(item).SetID(0)
	if r.Check != nil {
		if err := r.Check(c, item); err != nil {
			respondErr(c, err, r.name)
			return
		}
	}

	ctx := c.Request.Context()
	if err := r.repo.Create(ctx, item); err != nil {
		respondErr(c, err, r.name)
		return
	}
	r.respondFresh(c, http.StatusCreated, item)
}

// Update binds the body over the stored row, so omitted fields keep their values.
func (r *Resource[T, PT]) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	item, err := r.repo.Get(ctx, id)
	if err != nil {
		respondErr(c, err, r.name)
		return
	}
	if err := c.ShouldBindJSON(item); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	PT(item).SetID(id)
	if r.Check != nil {
		if err := r.Check(c, item); err != nil {
			respondErr(c, err, r.name)
			return
		}
	}

	store := r.repo.Save
	if r.Store != nil {
		store = r.Store
	}
	if err := store(ctx, item); err != nil {
		respondErr(c, err, r.name)
		return
	}
	r.respondFresh(c, http.StatusOK, item)
}

func (r *Resource[T, PT]) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := r.repo.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err, r.name)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa"})
}

// respondFresh reloads the row so load hooks (derived status) run before it is echoed.
func (r *Resource[T, PT]) respondFresh(c *gin.Context, status int, item *T) {
	if fresh, err := r.repo.Get(c.Request.Context(), PT(item).GetID()); err == nil {
		item = fresh
	}
	c.JSON(status, item)
}
