package repository

import (
	"context"

	"LandWatch-App/internal/domain/model"
)

type UsersRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}
