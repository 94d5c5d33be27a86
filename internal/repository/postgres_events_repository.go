package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/domain/repository"
	"LandWatch-App/internal/infrastructure/database"
)

type PostgresEventsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresEventsRepository(client *database.PostgreSQLClient) repository.EventsRepository {
	return &PostgresEventsRepository{
		client: client,
	}
}

func (r *PostgresEventsRepository) Create(ctx context.Context, event *model.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	query := `INSERT INTO events (id, user_id, title, start_time, end_time)
		VALUES (:id, :user_id, :title, :start_time, :end_time)`
	if _, err := r.client.DB.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("イベントの保存失敗: %w", err)
	}
	return nil
}

func (r *PostgresEventsRepository) ListByUser(ctx context.Context, userID string) ([]model.Event, error) {
	query := `SELECT id, user_id, title, start_time, end_time
		FROM events WHERE user_id = $1 ORDER BY start_time, id`

	events := []model.Event{}
	if err := r.client.DB.SelectContext(ctx, &events, query, userID); err != nil {
		return nil, fmt.Errorf("イベントの取得失敗: %w", err)
	}
	return events, nil
}
