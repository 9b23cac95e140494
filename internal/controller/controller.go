// Package controller holds the helpers shared by the user and admin handlers.
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/k12tutor/internal/apperror"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/rs/zerolog/log"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperror.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as JSON. Quota refusals carry the limit payload.
func RespondError(ctx *gin.Context, err error) {
	var quota *apperror.QuotaExceededError
	if errors.As(err, &quota) {
		ctx.JSON(http.StatusTooManyRequests, dto.QuotaExceededResponse{
			Error:     apperror.Message(err),
			Limit:     quota.Limit,
			Used:      quota.Used,
			ResetTime: quota.ResetTime,
		})
		return
	}

	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Request failed")
	} else {
		log.Debug().Err(err).Str("path", ctx.FullPath()).Int("status", status).Msg("Request rejected")
	}
	ctx.JSON(status, dto.ErrorResponse{Error: apperror.Message(err)})
}

// RespondBindError reports a request that failed binding or validation.
func RespondBindError(ctx *gin.Context, err error) {
	log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Failed to bind request")
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request", Details: []string{err.Error()}})
}

// ParseID reads a numeric path parameter. On failure it writes 400 and returns false.
func ParseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: fmt.Sprintf("Invalid %s format", name)})
		return 0, false
	}
	return uint(id), true
}
