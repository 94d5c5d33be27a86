package repository

import (
	"context"

	"LandWatch-App/internal/domain/model"
)

type LocationsRepository interface {
	Create(ctx context.Context, location *model.Location) error
	// GetLatest ユーザーが最後に保存した位置を取得（なければ model.ErrLocationNotFound）
	GetLatest(ctx context.Context, userID string) (*model.Location, error)
}
