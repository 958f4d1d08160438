package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Configure(logger.Config{Level: logger.Disabled})
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
		{apperrors.ErrYearLevelRequired, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Year level is required for this enrollment type"},
		{apperrors.ErrStudentNameExists, http.StatusConflict, dto.ErrorCodeConflict, "A student with this name already exists"},
		{apperrors.ErrSuperAdminRequired, http.StatusForbidden, dto.ErrorCodeForbidden, "This action requires Super Admin privileges"},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "invalid credentials"},
		{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "token expired"},
		{apperrors.ErrLogEntryNotUndoable, http.StatusUnprocessableEntity, dto.ErrorCodeUnsupported, "This action cannot be undone"},
		{fmt.Errorf("wrapped: %w", apperrors.ErrConflict), http.StatusConflict, dto.ErrorCodeConflict, "wrapped: conflict"},
		{errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/x", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.True(t, c.IsAborted())

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestHandleAPIError_IncludesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/x", nil)

	err := apperrors.NewCustomError(apperrors.ErrConflict, "Section still in use").
		WithDetails(map[string]interface{}{"section": "CS-1-A"})
	HandleAPIError(c, err)

	var resp struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CS-1-A", resp.Error.Details["section"])
}

func TestRequestLoggerAndLatency(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(), SimulatedLatency(time.Millisecond))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}
