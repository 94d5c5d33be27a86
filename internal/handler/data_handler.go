package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"LandWatch-App/internal/application"
	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/logging"
	"LandWatch-App/internal/usecase"
)

const defaultMaxCloudCover = 100.0

// DataHandler Landsatデータ・イベント・通過予測に関するHTTPハンドラー
type DataHandler struct {
	landsatService application.LandsatService
	eventsService  application.EventsService
	passUseCase    usecase.PassNotificationUseCase
	logger         logging.Logger
}

// NewDataHandler DataHandlerの新しいインスタンスを作成
func NewDataHandler(
	landsatService application.LandsatService,
	eventsService application.EventsService,
	passUseCase usecase.PassNotificationUseCase,
	logger logging.Logger,
) *DataHandler {
	return &DataHandler{
		landsatService: landsatService,
		eventsService:  eventsService,
		passUseCase:    passUseCase,
		logger:         logger,
	}
}

// LandsatData GET /data/get-landsat-data
func (h *DataHandler) LandsatData(c *gin.Context) {
	md, err := h.landsatService.Metadata(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, md)
}

// Scenes GET /data/scenes?max_cloud_cover=15
func (h *DataHandler) Scenes(c *gin.Context) {
	maxCloud := defaultMaxCloudCover
	if raw := c.Query("max_cloud_cover"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 100 {
			respondError(c, h.logger, &ValidationError{Field: "max_cloud_cover", Message: "max_cloud_cover must be a number between 0 and 100"})
			return
		}
		maxCloud = v
	}

	scenes, err := h.landsatService.Scenes(c.Request.Context(), maxCloud)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, scenes)
}

// Events GET /data/events
func (h *DataHandler) Events(c *gin.Context) {
	events, err := h.eventsService.ListEvents(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// AddEvent POST /data/add-event
func (h *DataHandler) AddEvent(c *gin.Context) {
	var req model.AddEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	event, err := h.eventsService.AddEvent(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event created successfully", "event_id": event.ID})
}

type passBody struct {
	Start        string  `json:"start"`
	End          string  `json:"end"`
	Satellite    string  `json:"satellite"`
	MaxElevation float64 `json:"max_elevation"`
}

// Passes POST /data/passes - 通過予測と通知登録
func (h *DataHandler) Passes(c *gin.Context) {
	passes, err := h.passUseCase.PredictPasses(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	data := make(map[string]passBody, len(passes))
	for i, p := range passes {
		data[strconv.Itoa(i+1)] = passBody{
			Start:        p.Start.UTC().Format(time.RFC3339),
			End:          p.End.UTC().Format(time.RFC3339),
			Satellite:    p.Satellite,
			MaxElevation: p.MaxElevationDeg,
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}
