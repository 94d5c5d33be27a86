package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/domain/repository"
	"LandWatch-App/internal/infrastructure/database"
)

type PostgresNotificationsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresNotificationsRepository(client *database.PostgreSQLClient) repository.NotificationsRepository {
	return &PostgresNotificationsRepository{
		client: client,
	}
}

func (r *PostgresNotificationsRepository) Create(ctx context.Context, n *model.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO notifications (id, user_email, title, description, read, created_at)
		VALUES (:id, :user_email, :title, :description, :read, :created_at)`
	if _, err := r.client.DB.NamedExecContext(ctx, query, n); err != nil {
		return fmt.Errorf("通知の保存失敗: %w", err)
	}
	return nil
}

func (r *PostgresNotificationsRepository) ListByEmail(ctx context.Context, email string) ([]model.Notification, error) {
	query := `SELECT id, user_email, title, description, read, created_at
		FROM notifications WHERE user_email = $1 ORDER BY created_at DESC`

	items := []model.Notification{}
	if err := r.client.DB.SelectContext(ctx, &items, query, email); err != nil {
		return nil, fmt.Errorf("通知の取得失敗: %w", err)
	}
	return items, nil
}

// MarkRead 既読にする（他人の通知や存在しないIDは model.ErrNotFound）
func (r *PostgresNotificationsRepository) MarkRead(ctx context.Context, email, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return model.ErrNotFound
	}

	res, err := r.client.DB.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_email = $2`, id, email)
	if err != nil {
		return fmt.Errorf("通知の更新失敗: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("通知の更新失敗: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
