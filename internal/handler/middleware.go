package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"LandWatch-App/internal/application"
	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/logging"
)

const (
	requestIDHeader = "X-Request-ID"
	userContextKey  = "auth_user"
)

// RequestLogger リクエストIDを付与し、1リクエスト1行でアクセスログを出す
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, id := logging.EnsureRequestID(c.Request.Context(), c.GetHeader(requestIDHeader))
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", c.Writer.Status()),
			logging.Float("duration_ms", float64(time.Since(start).Microseconds())/1000),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error(ctx, "request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Warn(ctx, "request", fields...)
		default:
			logger.Info(ctx, "request", fields...)
		}
	}
}

// BearerAuth Authorization: Bearer <access> を検証し、ユーザーをコンテキストに載せる
func BearerAuth(authService application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// currentUser BearerAuth が載せたユーザー
func currentUser(c *gin.Context) *model.AuthUser {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.AuthUser)
	return user
}
