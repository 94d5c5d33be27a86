package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/domain/repository"
	"LandWatch-App/internal/infrastructure/database"
)

const uniqueViolation = "23505"

type PostgresUsersRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresUsersRepository(client *database.PostgreSQLClient) repository.UsersRepository {
	return &PostgresUsersRepository{
		client: client,
	}
}

// Create ユーザーを作成（IDと作成日時が空なら埋める）
func (r *PostgresUsersRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	query := `INSERT INTO users (id, email, password_hash, created_at)
		VALUES (:id, :email, :password_hash, :created_at)`
	if _, err := r.client.DB.NamedExecContext(ctx, query, user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return model.ErrEmailTaken
		}
		return fmt.Errorf("ユーザーの作成失敗: %w", err)
	}
	return nil
}

func (r *PostgresUsersRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))
}

func (r *PostgresUsersRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrUserNotFound
	}
	return r.getOne(ctx, `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (r *PostgresUsersRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var user model.User
	if err := r.client.DB.GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("ユーザーデータの取得失敗: %w", err)
	}
	return &user, nil
}
