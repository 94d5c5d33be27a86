package repository

import (
	"context"

	"LandWatch-App/internal/domain/model"
)

// NotificationsRepository 通知フィードの保存先（PostgreSQLまたはFirestore）
type NotificationsRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	// ListByEmail 新しい順に取得
	ListByEmail(ctx context.Context, email string) ([]model.Notification, error)
	MarkRead(ctx context.Context, email, id string) error
}
