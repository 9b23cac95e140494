package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	studentIDKey   = "studentID"
	AdminKeyHeader = "X-Admin-Key"
)

// RequireStudent authenticates the bearer token and stores the student id on the context.
// A missing token is 401, a bad one 403.
func RequireStudent(tokens service.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Access token required"})
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Rejected bearer token")
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "Invalid token"})
			return
		}
		ctx.Set(studentIDKey, claims.Subject)
		ctx.Next()
	}
}

// StudentID returns the id stored by RequireStudent, or "" outside authenticated routes.
func StudentID(ctx *gin.Context) string {
	return ctx.GetString(studentIDKey)
}

// RequireAdminKey guards admin routes with a shared key. An empty key disables them.
func RequireAdminKey(key string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if key == "" {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "Admin API disabled"})
			return
		}
		given := ctx.GetHeader(AdminKeyHeader)
		if given == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Admin key required"})
			return
		}
		if subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
			log.Warn().Str("client_ip", ctx.ClientIP()).Msg("Rejected admin key")
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "Invalid admin key"})
			return
		}
		ctx.Next()
	}
}
