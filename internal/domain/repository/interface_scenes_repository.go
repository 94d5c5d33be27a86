package repository

import (
	"context"

	"LandWatch-App/internal/domain/model"
)

// ScenesRepository Landsatシーンカタログ
type ScenesRepository interface {
	// List 雲量が maxCloudCover 以下のシーンを撮影日時の新しい順に取得
	List(ctx context.Context, maxCloudCover float64) ([]model.Scene, error)
}
