package controllers

import (
	"errors"
	"strconv"

	"carwash-backend/repository"
	"carwash-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondErr maps repository sentinels to 404/409 and writes everything else
// through the AppError taxonomy.
func respondErr(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.RespondAppError(c, utils.NotFoundError(resource))
	case errors.Is(err, repository.ErrConflict):
		utils.RespondAppError(c, utils.ConflictError("Dữ liệu đã thay đổi, vui lòng thử lại"))
	default:
		utils.RespondAppError(c, err)
	}
}

// idParam reads a positive numeric path parameter. It writes a 400 and
// returns false when the value is malformed.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.RespondAppError(c, utils.ValidationError("ID không hợp lệ"))
		return 0, false
	}
	return uint(id), true
}

// optionalUint parses a query value; empty or malformed input yields nil.
func optionalUint(v string) *uint {
	if v == "" {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil || n == 0 {
		return nil
	}
	id := uint(n)
	return &id
}
