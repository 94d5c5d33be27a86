package repository

import (
	"context"

	"LandWatch-App/internal/domain/model"
)

type EventsRepository interface {
	Create(ctx context.Context, event *model.Event) error
	// ListByUser 開始時刻の昇順で取得
	ListByUser(ctx context.Context, userID string) ([]model.Event, error)
}
