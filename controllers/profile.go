package controllers

import (
	"net/http"
	"strings"

	"carwash-backend/models"
	"carwash-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateProfileInput struct {
	FullName string `json:"full_name" binding:"required"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// ProfileController lets the signed-in user edit their own account.
type ProfileController struct {
	db *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{db: db}
}

func (pc *ProfileController) currentUser(c *gin.Context) (*models.User, bool) {
	var user models.User
	if err := pc.db.WithContext(c.Request.Context()).First(&user, c.GetUint("userId")).Error; err != nil {
		utils.RespondAppError(c, utils.UnauthorizedError("Không tìm thấy người dùng"))
		return nil, false
	}
	return &user, true
}

func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	user, ok := pc.currentUser(c)
	if !ok {
		return
	}

	user.FullName = strings.TrimSpace(input.FullName)
	if err := pc.db.WithContext(c.Request.Context()).Model(user).Update("full_name", user.FullName).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (pc *ProfileController) ChangePassword(c *gin.Context) {
	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}
	user, ok := pc.currentUser(c)
	if !ok {
		return
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		utils.RespondAppError(c, utils.ValidationError("Mật khẩu hiện tại không đúng"))
		return
	}
	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Không thể đổi mật khẩu")
		return
	}
	if err := pc.db.WithContext(c.Request.Context()).Model(user).Update("password", hashed).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã đổi mật khẩu"})
}
