package model

import "time"

// DefaultLatitude / DefaultLongitude 新規ユーザーに設定される初期位置
const (
	DefaultLatitude  = 50.57783306469678
	DefaultLongitude = 22.055728493148585
)

// 位置保存時に指定がなかった場合の通知設定
const (
	DefaultNotificationAdvance = 0
	DefaultCloudCoverage       = 100
)

// LatLng 緯度経度を表す基本的な型
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location ユーザーが保存した観測地点
type Location struct {
	ID                  string    `json:"id,omitempty" db:"id"`
	UserID              string    `json:"-" db:"user_id"`
	Latitude            float64   `json:"latitude" db:"latitude"`
	Longitude           float64   `json:"longitude" db:"longitude"`
	NotificationAdvance int       `json:"notification_advance" db:"notification_advance"` // 通過の何時間前に通知するか
	CloudCoverage       int       `json:"cloud_coverage" db:"cloud_coverage"`             // 許容する雲量（%）
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

// ToLatLng LocationをLatLng型に変換
func (l *Location) ToLatLng() LatLng {
	return LatLng{Lat: l.Latitude, Lng: l.Longitude}
}

// SaveLocationRequest POST /auth/location のリクエスト
type SaveLocationRequest struct {
	Latitude            *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude           *float64 `json:"longitude" binding:"required,min=-180,max=180"`
	NotificationAdvance *int     `json:"notification_advance" binding:"omitempty,min=0,max=168"`
	CloudCoverage       *int     `json:"cloud_coverage" binding:"omitempty,min=0,max=100"`
}
