package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"LandWatch-App/internal/domain/model"
)

// トークン種別（typ クレーム）
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims 発行するJWTのクレーム
type Claims struct {
	Email string `json:"email"`
	Type  string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenIssuer HS256でアクセストークン・リフレッシュトークンを発行・検証する
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenIssuer 新しいTokenIssuerを作成
func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// IssuePair ユーザーのアクセストークンとリフレッシュトークンを発行
func (ti *TokenIssuer) IssuePair(user *model.User) (*model.TokenPair, error) {
	access, err := ti.issue(user.ID, user.Email, TokenTypeAccess, ti.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := ti.issue(user.ID, user.Email, TokenTypeRefresh, ti.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &model.TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh リフレッシュトークンから新しいアクセストークンを発行
func (ti *TokenIssuer) Refresh(refreshToken string) (string, error) {
	claims, err := ti.Parse(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}
	return ti.issue(claims.Subject, claims.Email, TokenTypeAccess, ti.accessTTL)
}

// Parse トークンを検証し、種別が want であることを確認する
func (ti *TokenIssuer) Parse(token, want string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return ti.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(ti.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}
	if claims.Type != want {
		return nil, fmt.Errorf("%w: typ=%q", model.ErrInvalidToken, claims.Type)
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: subject がありません", model.ErrInvalidToken)
	}
	return claims, nil
}

func (ti *TokenIssuer) issue(subject, email, typ string, ttl time.Duration) (string, error) {
	if len(ti.secret) == 0 {
		return "", errors.New("JWTの署名鍵が設定されていません")
	}
	now := ti.now()
	claims := Claims{
		Email: email,
		Type:  typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("トークンの署名に失敗: %w", err)
	}
	return signed, nil
}
