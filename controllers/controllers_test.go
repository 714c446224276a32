package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"carwash-backend/repository"
	"carwash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestIDParam(t *testing.T) {
	tests := []struct {
		raw    string
		want   uint
		wantOK bool
	}{
		{"7", 7, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: tt.raw}}

			got, ok := idParam(c, "id")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestOptionalUint(t *testing.T) {
	assert.Nil(t, optionalUint(""))
	assert.Nil(t, optionalUint("x"))
	assert.Nil(t, optionalUint("0"))
	require.NotNil(t, optionalUint("12"))
	assert.Equal(t, uint(12), *optionalUint("12"))
}

func TestRespondErr(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{repository.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", repository.ErrConflict), http.StatusConflict},
		{utils.ValidationError("sai"), http.StatusBadRequest},
		{fmt.Errorf("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondErr(c, tt.err, "khách hàng")
		assert.Equal(t, tt.want, w.Code, tt.err.Error())
	}
}

func TestValidateTerms(t *testing.T) {
	limit := 50000.0
	negative := -1.0

	assert.NoError(t, validateTerms("percentage", 10, 0, &limit))
	assert.NoError(t, validateTerms("percentage", 100, 0, nil))
	assert.NoError(t, validateTerms("fixed", 20000, 100000, nil))

	assert.Error(t, validateTerms("percentage", 0, 0, nil))
	assert.Error(t, validateTerms("percentage", 101, 0, nil))
	assert.Error(t, validateTerms("fixed", 0, 0, nil))
	assert.Error(t, validateTerms("bogus", 10, 0, nil))
	assert.Error(t, validateTerms("fixed", 10, -5, nil))
	assert.Error(t, validateTerms("fixed", 10, 0, &negative))
}

func TestValidateWindow(t *testing.T) {
	assert.NoError(t, validateWindow("", "", "valid_from", "valid_until", false))
	assert.NoError(t, validateWindow("2025-06-01", "2025-06-01", "start_date", "end_date", true))

	err := validateWindow("", "2025-06-30", "start_date", "end_date", true)
	require.Error(t, err)
	assert.Equal(t, "Thiếu trường bắt buộc: start_date", err.Error())

	err = validateWindow("2025-06-31", "", "valid_from", "valid_until", false)
	require.Error(t, err)
	assert.Equal(t, "Ngày không hợp lệ (YYYY-MM-DD): valid_from", err.Error())

	assert.Error(t, validateWindow("2025-07-01", "2025-06-01", "start_date", "end_date", true))
}
