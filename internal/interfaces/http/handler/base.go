package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/interfaces/http/dto"
	"github.com/clinic/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common response helpers for HTTP handlers.
type BaseHandler struct{}

// Success writes a 200 response with the given data.
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta writes a 200 response with data and pagination metadata.
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, meta dto.Meta) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, meta))
}

// Created writes a 201 response with the given data.
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent writes a 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response with the given message.
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message)
}

// Error writes an error response, mapping the code to an HTTP status.
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	requestID := c.GetString(middleware.RequestIDContextKey)
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message, requestID))
}

// HandleError inspects an error returned by the application layer and
// writes the appropriate error response.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, domainErr.Code, domainErr.Message)
		return
	}

	h.Error(c, dto.ErrCodeInternal, "An unexpected error occurred")
}

// tenantID returns the authenticated tenant ID, aborting with 401 when
// the request carries no valid tenant.
func (h *BaseHandler) tenantID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := middleware.GetJWTTenantID(c)
	if !ok {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		h.Error(c, dto.ErrCodeUnauthorized, "Invalid tenant identity")
		return uuid.Nil, false
	}
	return id, true
}

// userID returns the authenticated user ID, aborting with 401 when the
// request carries no valid user.
func (h *BaseHandler) userID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := middleware.GetJWTUserID(c)
	if !ok {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		h.Error(c, dto.ErrCodeUnauthorized, "Invalid user identity")
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the :id path parameter as a UUID.
func (h *BaseHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid resource ID")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid resource ID")
		return uuid.Nil, false
	}
	return id, true
}
