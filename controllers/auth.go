package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"carwash-backend/logger"
	"carwash-backend/models"
	"carwash-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	db       *gorm.DB
	secret   string
	tokenTTL time.Duration
}

func NewAuthController(db *gorm.DB, secret string, tokenTTL time.Duration) *AuthController {
	return &AuthController{db: db, secret: secret, tokenTTL: tokenTTL}
}

func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	username := strings.TrimSpace(input.Username)

	var user models.User
	err := a.db.WithContext(c.Request.Context()).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondAppError(c, utils.UnauthorizedError("Sai tên đăng nhập hoặc mật khẩu"))
		} else {
			utils.RespondAppError(c, err)
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		logger.Log.Info("login failed", zap.String("username", username), zap.String("ip", c.ClientIP()))
		utils.RespondAppError(c, utils.UnauthorizedError("Sai tên đăng nhập hoặc mật khẩu"))
		return
	}

	token, err := utils.GenerateToken(a.secret, user.ID, user.Role, a.tokenTTL)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Không thể tạo token")
		return
	}

	// Update last login
	now := time.Now()
	if err := a.db.WithContext(c.Request.Context()).Model(&user).Update("last_login", &now).Error; err != nil {
		logger.Log.Warn("failed to update last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	user.LastLogin = &now

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func (a *AuthController) Me(c *gin.Context) {
	userID := c.GetUint("userId")

	var user models.User
	if err := a.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		utils.RespondAppError(c, utils.UnauthorizedError("Không tìm thấy người dùng"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
