package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/medistore/storefront/internal/domain/shared"
	"github.com/medistore/storefront/internal/infrastructure/logger"
	"github.com/medistore/storefront/internal/infrastructure/medistore"
	"github.com/medistore/storefront/internal/interfaces/http/dto"
	"github.com/medistore/storefront/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, limit, totalPages int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, limit, totalPages))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// bindJSON binds the body into req. Binding tag failures are reported field
// by field; anything else is malformed JSON.
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			middleware.HandleValidationError(c, verrs)
			return false
		}
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Request body is not valid JSON")
		return false
	}
	return true
}

// HandleError converts validation, domain and remote API errors to HTTP
// responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		middleware.HandleValidationError(c, verrs)
		return
	}

	status, code, message := classifyError(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("Request failed", zap.Error(err))
	}
	_ = c.Error(err)
	h.Error(c, status, code, message)
}

// classifyError maps err to a status, an error code and a shopper-facing
// message
func classifyError(err error) (int, string, string) {
	if f, ok := medistore.AsFailure(err); ok {
		return classifyFailure(f)
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		return dto.GetHTTPStatus(code), code, domainErr.Message
	}

	return http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred"
}

// classifyFailure passes the remote API's own refusals through and turns
// everything else into a bad gateway. A refusal sent with a 2xx status
// becomes 422.
func classifyFailure(f *medistore.Failure) (int, string, string) {
	switch {
	case f.Kind == medistore.KindTransport:
		return http.StatusBadGateway, dto.ErrCodeUpstreamUnavailable, f.Message
	case f.Kind == medistore.KindRemote && f.Status < 400:
		return http.StatusUnprocessableEntity, dto.ErrCodeUpstream, f.Message
	case f.Kind == medistore.KindRemote && f.Status < 500:
		code := dto.ErrCodeUpstream
		switch f.Status {
		case http.StatusUnauthorized:
			code = dto.ErrCodeUnauthorized
		case http.StatusForbidden:
			code = dto.ErrCodeForbidden
		case http.StatusNotFound:
			code = dto.ErrCodeNotFound
		case http.StatusConflict:
			code = dto.ErrCodeConflict
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			code = dto.ErrCodeInvalidInput
		}
		return f.Status, code, f.Message
	default:
		return http.StatusBadGateway, dto.ErrCodeUpstream, f.Message
	}
}
