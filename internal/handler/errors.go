package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/logging"
)

// ValidationError 入力検証エラー
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// respondError ドメインエラーをHTTPステータスに対応付けて返す
func respondError(c *gin.Context, logger logging.Logger, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, model.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists."})
	case errors.Is(err, model.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, model.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
	case errors.Is(err, model.ErrInvalidEventRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_time must not be before start_time"})
	case errors.Is(err, model.ErrNoPasses):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No passes found for your location."})
	case errors.Is(err, model.ErrSceneFileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrLocationNotFound), errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		logger.Error(c.Request.Context(), "リクエストの処理に失敗",
			logging.String("path", c.FullPath()), logging.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
