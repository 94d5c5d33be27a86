package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"LandWatch-App/internal/application"
	"LandWatch-App/internal/logging"
)

// NotificationsHandler 通知フィードに関するHTTPハンドラー
type NotificationsHandler struct {
	notificationsService application.NotificationsService
	logger               logging.Logger
}

// NewNotificationsHandler NotificationsHandlerの新しいインスタンスを作成
func NewNotificationsHandler(notificationsService application.NotificationsService, logger logging.Logger) *NotificationsHandler {
	return &NotificationsHandler{notificationsService: notificationsService, logger: logger}
}

// List GET /data/notifications
func (h *NotificationsHandler) List(c *gin.Context) {
	resp, err := h.notificationsService.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarkRead POST /data/notifications/:id/read
func (h *NotificationsHandler) MarkRead(c *gin.Context) {
	if err := h.notificationsService.MarkRead(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
