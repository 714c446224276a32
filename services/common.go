package services

import (
	"errors"
	"time"

	"carwash-backend/repository"
	"carwash-backend/utils"

	"github.com/shopspring/decimal"
)

// Clock returns the current time; tests swap it for a fixed one.
type Clock func() time.Time

func money(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// appErr maps repository sentinels onto the API error taxonomy.
func appErr(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return utils.NotFoundError(resource)
	case errors.Is(err, repository.ErrConflict):
		return utils.ConflictError("Dữ liệu đã thay đổi, vui lòng thử lại")
	}
	return err
}
