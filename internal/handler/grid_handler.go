package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb/geojson"

	"LandWatch-App/internal/domain/service"
	"LandWatch-App/internal/logging"
)

// GridHandler WRS-2グリッド検索のHTTPハンドラー
type GridHandler struct {
	resolver *service.GridResolver
	logger   logging.Logger
}

// NewGridHandler GridHandlerの新しいインスタンスを作成
func NewGridHandler(resolver *service.GridResolver, logger logging.Logger) *GridHandler {
	return &GridHandler{resolver: resolver, logger: logger}
}

// Lookup GET /grid/wrs2?lat=&lon= - 座標を含むセルと周囲8セルのFeatureCollection
func (h *GridHandler) Lookup(c *gin.Context) {
	lat, err := parseCoordinate(c.Query("lat"), "lat", 90)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	lon, err := parseCoordinate(c.Query("lon"), "lon", 180)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	nb := h.resolver.Resolve(c.Request.Context(), lat, lon)
	fc := nb.FeatureCollection()
	fc.ExtraMembers = geojson.Properties{
		"found":     nb.Found,
		"latitude":  nb.Latitude,
		"longitude": nb.Longitude,
	}
	if nb.Center != nil {
		fc.ExtraMembers["center"] = gin.H{"path": nb.Center.Path, "row": nb.Center.Row}
	}
	c.JSON(http.StatusOK, fc)
}

// Cell GET /grid/wrs2/:path/:row
func (h *GridHandler) Cell(c *gin.Context) {
	path, err := strconv.Atoi(c.Param("path"))
	if err != nil {
		respondError(c, h.logger, &ValidationError{Field: "path", Message: "path must be an integer"})
		return
	}
	row, err := strconv.Atoi(c.Param("row"))
	if err != nil {
		respondError(c, h.logger, &ValidationError{Field: "row", Message: "row must be an integer"})
		return
	}

	cell, ok := h.resolver.Cell(path, row)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grid cell not found"})
		return
	}
	c.JSON(http.StatusOK, cell.ToFeature())
}

func parseCoordinate(raw, field string, limit float64) (float64, error) {
	if raw == "" {
		return 0, &ValidationError{Field: field, Message: field + " is required"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !(v >= -limit && v <= limit) {
		return 0, &ValidationError{Field: field, Message: field + " must be a number between -" + strconv.FormatFloat(limit, 'f', -1, 64) + " and " + strconv.FormatFloat(limit, 'f', -1, 64)}
	}
	return v, nil
}
