package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/domain/repository"
	"LandWatch-App/internal/infrastructure/database"
)

const scenesTable = "landsat_scenes"

type SupabaseScenesRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseScenesRepository(client *database.SupabaseClient) repository.ScenesRepository {
	return &SupabaseScenesRepository{
		client: client,
	}
}

// sceneRow landsat_scenes テーブルの行
type sceneRow struct {
	ID           string    `json:"id"`
	AcquiredAt   time.Time `json:"acquired_at"`
	Satellite    string    `json:"satellite"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	WRSPath      int       `json:"wrs_path"`
	WRSRow       int       `json:"wrs_row"`
	CloudCover   float64   `json:"cloud_cover"`
	ImageQuality *int      `json:"image_quality"`
}

func (r sceneRow) toScene() model.Scene {
	s := model.Scene{
		ID:         r.ID,
		AcquiredAt: r.AcquiredAt.UTC(),
		Satellite:  r.Satellite,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		Path:       r.WRSPath,
		Row:        r.WRSRow,
		CloudCover: r.CloudCover,
	}
	if r.ImageQuality != nil {
		s.ImageQuality = *r.ImageQuality
	}
	return s
}

func (r *SupabaseScenesRepository) List(ctx context.Context, maxCloudCover float64) ([]model.Scene, error) {
	data, _, err := r.client.GetClient().From(scenesTable).
		Select("*", "exact", false).
		Lte("cloud_cover", strconv.FormatFloat(maxCloudCover, 'f', -1, 64)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("シーンデータの取得失敗: %w", err)
	}

	var rows []sceneRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("シーンデータのJSONアンマーシャル失敗: %w", err)
	}

	scenes := make([]model.Scene, 0, len(rows))
	for _, row := range rows {
		scenes = append(scenes, row.toScene())
	}
	sort.SliceStable(scenes, func(i, j int) bool {
		return scenes[i].AcquiredAt.After(scenes[j].AcquiredAt)
	})
	return scenes, nil
}
