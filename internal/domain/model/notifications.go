package model

import "time"

// Notification 通知パネルに表示する通知
type Notification struct {
	ID          string    `json:"id" firestore:"-" db:"id"`
	UserEmail   string    `json:"-" firestore:"user_email" db:"user_email"`
	Title       string    `json:"title" firestore:"title" db:"title"`
	Description string    `json:"description" firestore:"description" db:"description"`
	Read        bool      `json:"read" firestore:"read" db:"read"`
	CreatedAt   time.Time `json:"created_at" firestore:"created_at" db:"created_at"`
}

// NotificationsResponse GET /data/notifications のレスポンス
type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	Unread        int            `json:"unread"`
}
