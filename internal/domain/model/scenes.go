package model

import "time"

// LandsatMetadata MTLファイルから抽出したシーンのメタデータ
type LandsatMetadata struct {
	WRSPath          *string `json:"WRS_PATH"`
	WRSRow           *string `json:"WRS_ROW"`
	DateAcquired     *string `json:"DATE_ACQUIRED"`
	SceneCenterTime  *string `json:"SCENE_CENTER_TIME"`
	CloudCover       *string `json:"CLOUD_COVER"`
	ImageQualityTIRS *string `json:"IMAGE_QUALITY_TIRS"`
	SpacecraftID     *string `json:"SPACECRAFT_ID"`
}

// Scene Landsatデータ表の1行
type Scene struct {
	ID           string    `json:"id"`
	AcquiredAt   time.Time `json:"date_time"`
	Satellite    string    `json:"landsat"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Path         int       `json:"path"`
	Row          int       `json:"row"`
	CloudCover   float64   `json:"cloud_cover"`
	ImageQuality int       `json:"image_quality"`
}
