// Package controllers adapts gin requests to the operation gateway
package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/schooladmin/internal/app/gateway"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/middleware"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
)

// maxBodyBytes caps request payloads
const maxBodyBytes = 1 << 20

// APIController serves every legacy endpoint through the gateway
type APIController struct {
	facade *gateway.Facade
	logger zerolog.Logger
}

// NewAPIController creates a new APIController
func NewAPIController(facade *gateway.Facade, logger zerolog.Logger) *APIController {
	return &APIController{
		facade: facade,
		logger: logger,
	}
}

// Handle returns the gin handler for op
func (a *APIController) Handle(op gateway.Operation) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		req := gateway.Request{
			Op:    op,
			ID:    ctx.Param("id"),
			Query: ctx.Request.URL.Query(),
		}
		req.Actor, _ = middleware.GetActor(ctx)

		if ctx.Request.Body != nil && ctx.Request.ContentLength != 0 {
			body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxBodyBytes))
			if err != nil {
				a.logger.Warn().Err(err).Str("operation", op.String()).Msg("Failed to read request body")
				middleware.HandleAPIError(ctx, apperrors.NewValidationError("Unreadable request body"))
				return
			}
			req.Payload = body
		}

		data, err := a.facade.Dispatch(ctx.Request.Context(), req)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}

		resp := dto.NewSuccessResponse(data)
		status := http.StatusOK
		switch {
		case ctx.Request.Method == http.MethodDelete:
			resp.Message = "Deleted successfully"
		case strings.HasSuffix(op.String(), ".create"):
			status = http.StatusCreated
		}
		ctx.JSON(status, resp)
	}
}
