package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/domain/repository"
	"LandWatch-App/internal/infrastructure/auth"
)

// AuthService 登録・ログイン・トークン検証を提供するサービス
type AuthService interface {
	// SignUp ユーザーを登録し、初期位置を保存してトークンを発行
	SignUp(ctx context.Context, req *model.CredentialsRequest) (*model.TokenPair, error)

	// SignIn 認証してトークンを発行（失敗時は model.ErrInvalidCredentials）
	SignIn(ctx context.Context, req *model.CredentialsRequest) (*model.TokenPair, error)

	// Refresh リフレッシュトークンから新しいアクセストークンを発行
	Refresh(ctx context.Context, refreshToken string) (string, error)

	// Authenticate アクセストークンを検証してユーザーを返す
	Authenticate(ctx context.Context, accessToken string) (*model.AuthUser, error)
}

type authServiceImpl struct {
	usersRepo     repository.UsersRepository
	locationsRepo repository.LocationsRepository
	tokens        *auth.TokenIssuer
}

// NewAuthService AuthServiceの新しいインスタンスを作成
func NewAuthService(usersRepo repository.UsersRepository, locationsRepo repository.LocationsRepository, tokens *auth.TokenIssuer) AuthService {
	return &authServiceImpl{
		usersRepo:     usersRepo,
		locationsRepo: locationsRepo,
		tokens:        tokens,
	}
}

func (s *authServiceImpl) SignUp(ctx context.Context, req *model.CredentialsRequest) (*model.TokenPair, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.usersRepo.GetByEmail(ctx, email); err == nil {
		return nil, model.ErrEmailTaken
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Email: email, PasswordHash: hash}
	if err := s.usersRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	location := &model.Location{
		UserID:              user.ID,
		Latitude:            model.DefaultLatitude,
		Longitude:           model.DefaultLongitude,
		NotificationAdvance: model.DefaultNotificationAdvance,
		CloudCoverage:       model.DefaultCloudCoverage,
	}
	if err := s.locationsRepo.Create(ctx, location); err != nil {
		return nil, fmt.Errorf("初期位置の保存に失敗: %w", err)
	}

	return s.tokens.IssuePair(user)
}

func (s *authServiceImpl) SignIn(ctx context.Context, req *model.CredentialsRequest) (*model.TokenPair, error) {
	user, err := s.usersRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil || !ok {
		return nil, model.ErrInvalidCredentials
	}
	return s.tokens.IssuePair(user)
}

func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return s.tokens.Refresh(refreshToken)
}

func (s *authServiceImpl) Authenticate(ctx context.Context, accessToken string) (*model.AuthUser, error) {
	claims, err := s.tokens.Parse(accessToken, auth.TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	// 削除済みユーザーのトークンは受け付けない
	user, err := s.usersRepo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidToken
		}
		return nil, err
	}
	return &model.AuthUser{ID: user.ID, Email: user.Email}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
