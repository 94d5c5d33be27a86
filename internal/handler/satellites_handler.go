package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"LandWatch-App/internal/domain/model"
)

// PositionsSource 衛星位置のスナップショット提供元
type PositionsSource interface {
	Positions() []model.SatellitePosition
}

// SatellitesHandler 衛星位置のHTTPハンドラー
type SatellitesHandler struct {
	tracker PositionsSource
}

// NewSatellitesHandler SatellitesHandlerの新しいインスタンスを作成
func NewSatellitesHandler(tracker PositionsSource) *SatellitesHandler {
	return &SatellitesHandler{tracker: tracker}
}

// Positions GET /satellites/positions
func (h *SatellitesHandler) Positions(c *gin.Context) {
	positions := h.tracker.Positions()
	c.JSON(http.StatusOK, gin.H{"positions": positions, "count": len(positions)})
}
