package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/domain/repository"
	"LandWatch-App/internal/infrastructure/database"
)

type PostgresLocationsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresLocationsRepository(client *database.PostgreSQLClient) repository.LocationsRepository {
	return &PostgresLocationsRepository{
		client: client,
	}
}

func (r *PostgresLocationsRepository) Create(ctx context.Context, location *model.Location) error {
	if location.ID == "" {
		location.ID = uuid.NewString()
	}
	if location.CreatedAt.IsZero() {
		location.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO locations (id, user_id, latitude, longitude, notification_advance, cloud_coverage, created_at)
		VALUES (:id, :user_id, :latitude, :longitude, :notification_advance, :cloud_coverage, :created_at)`
	if _, err := r.client.DB.NamedExecContext(ctx, query, location); err != nil {
		return fmt.Errorf("位置情報の保存失敗: %w", err)
	}
	return nil
}

func (r *PostgresLocationsRepository) GetLatest(ctx context.Context, userID string) (*model.Location, error) {
	query := `SELECT id, user_id, latitude, longitude, notification_advance, cloud_coverage, created_at
		FROM locations WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`

	var location model.Location
	if err := r.client.DB.GetContext(ctx, &location, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrLocationNotFound
		}
		return nil, fmt.Errorf("位置情報の取得失敗: %w", err)
	}
	return &location, nil
}
