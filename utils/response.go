package utils

import (
	"errors"
	"fmt"
	"net/http"

	"carwash-backend/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RespondWithError aborts the request with {"error": message}.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// RespondAppError writes err using its AppError status. Server errors are logged.
func RespondAppError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	if appErr.Code >= http.StatusInternalServerError {
		logger.Log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("requestId")),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(appErr.Code, appErr)
}

// RespondBindError turns a gin binding error into a 400 with a Vietnamese message.
func RespondBindError(c *gin.Context, err error) {
	RespondAppError(c, ValidationError(BindingMessage(err)))
}

// BindingMessage describes the first failed field of a validation error.
func BindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Dữ liệu không hợp lệ"
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required", "required_without":
		return fmt.Sprintf("Thiếu trường bắt buộc: %s", field)
	case "min", "gte":
		return fmt.Sprintf("Giá trị của %s phải lớn hơn hoặc bằng %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("Giá trị của %s phải nhỏ hơn hoặc bằng %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("Giá trị của %s phải lớn hơn %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("Giá trị của %s phải là một trong: %s", field, fe.Param())
	case "phone":
		return fmt.Sprintf("Số điện thoại không hợp lệ: %s", field)
	case "isodate":
		return fmt.Sprintf("Ngày không hợp lệ (YYYY-MM-DD): %s", field)
	case "email":
		return fmt.Sprintf("Email không hợp lệ: %s", field)
	}
	return fmt.Sprintf("Trường %s không hợp lệ", field)
}
