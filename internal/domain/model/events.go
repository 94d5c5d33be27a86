package model

import "time"

// Event ユーザーのカレンダーイベント（撮影予定など）
type Event struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"-" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	StartTime time.Time `json:"start_time" db:"start_time"`
	EndTime   time.Time `json:"end_time" db:"end_time"`
}

// AddEventRequest POST /data/add-event のリクエスト
type AddEventRequest struct {
	Title     string    `json:"title" binding:"required,max=200"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}
