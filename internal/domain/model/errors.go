package model

import "errors"

var (
	ErrNoContainingCell   = errors.New("指定座標を含むグリッドセルが見つかりません")
	ErrUserNotFound       = errors.New("ユーザーが見つかりません")
	ErrEmailTaken         = errors.New("このメールアドレスは既に登録されています")
	ErrInvalidCredentials = errors.New("メールアドレスまたはパスワードが正しくありません")
	ErrInvalidToken       = errors.New("無効なトークンです")
	ErrLocationNotFound   = errors.New("位置情報が見つかりません")
	ErrSceneFileNotFound  = errors.New("シーンファイルが見つかりません")
	ErrNoPasses           = errors.New("予測された通過がありません")
	ErrInvalidEventRange  = errors.New("終了時刻が開始時刻より前です")
	ErrNotFound           = errors.New("見つかりません")
)
