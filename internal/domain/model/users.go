package model

import "time"

// User 登録ユーザー
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CredentialsRequest サインアップ・サインインのリクエスト
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// TokenRefreshRequest POST /auth/refresh のリクエスト
type TokenRefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// AccessTokenRequest POST /auth/me のリクエスト
type AccessTokenRequest struct {
	Access  string `json:"access" binding:"required"`
	Refresh string `json:"refresh,omitempty"`
}

// TokenPair 発行されたトークン
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// AuthUser 認証済みリクエストのユーザー（アクセストークンのクレームから復元）
type AuthUser struct {
	ID    string
	Email string
}
