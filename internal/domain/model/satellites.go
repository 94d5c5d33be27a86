package model

import "time"

// Landsat衛星のNORADカタログ番号
const (
	CatalogLandsat8 = 39084
	CatalogLandsat9 = 49260
)

// DefaultTrackedSatellites 既定で追跡する衛星
var DefaultTrackedSatellites = []int{CatalogLandsat8, CatalogLandsat9}

// TLE 2行軌道要素（名称行付き）
type TLE struct {
	CatalogNumber int    `json:"catalog_number"`
	Name          string `json:"name"`
	Line1         string `json:"line1"`
	Line2         string `json:"line2"`
}

// SatellitePosition ある時刻の衛星の地上直下点
type SatellitePosition struct {
	Name          string    `json:"name"`
	CatalogNumber int       `json:"catalog_number"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	AltitudeKm    float64   `json:"altitude_km"`
	Timestamp     time.Time `json:"timestamp"`
}

// Pass 観測地点上空の1回の通過
type Pass struct {
	Satellite       string    `json:"satellite"`
	CatalogNumber   int       `json:"catalog_number"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	MaxElevationDeg float64   `json:"max_elevation"`
	MaxAt           time.Time `json:"max_at"`
}
