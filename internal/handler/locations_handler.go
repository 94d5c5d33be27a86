package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"LandWatch-App/internal/application"
	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/logging"
)

// LocationsHandler 観測地点に関するHTTPハンドラー
type LocationsHandler struct {
	locationsService application.LocationsService
	logger           logging.Logger
}

// NewLocationsHandler LocationsHandlerの新しいインスタンスを作成
func NewLocationsHandler(locationsService application.LocationsService, logger logging.Logger) *LocationsHandler {
	return &LocationsHandler{locationsService: locationsService, logger: logger}
}

type locationBody struct {
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	NotificationAdvance int     `json:"notification_advance"`
	CloudCoverage       int     `json:"cloud_coverage"`
}

func toLocationBody(l *model.Location) locationBody {
	return locationBody{
		Latitude:            l.Latitude,
		Longitude:           l.Longitude,
		NotificationAdvance: l.NotificationAdvance,
		CloudCoverage:       l.CloudCoverage,
	}
}

// SaveLocation POST /auth/location
func (h *LocationsHandler) SaveLocation(c *gin.Context) {
	var req model.SaveLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	location, err := h.locationsService.SaveLocation(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Location saved successfully",
		"location": toLocationBody(location),
	})
}

// LastLocation GET /auth/last-location
func (h *LocationsHandler) LastLocation(c *gin.Context) {
	user := currentUser(c)
	location, err := h.locationsService.LastLocation(c.Request.Context(), user)
	if errors.Is(err, model.ErrLocationNotFound) {
		c.JSON(http.StatusOK, gin.H{
			"email":   user.Email,
			"message": "No locations found for this user",
		})
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toLocationBody(location))
}
