// Package memory リポジトリインターフェースのインメモリ実装（テスト・ローカル確認用）
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/domain/repository"
)

var (
	_ repository.UsersRepository         = (*UsersRepository)(nil)
	_ repository.LocationsRepository     = (*LocationsRepository)(nil)
	_ repository.EventsRepository        = (*EventsRepository)(nil)
	_ repository.NotificationsRepository = (*NotificationsRepository)(nil)
	_ repository.ScenesRepository        = (*ScenesRepository)(nil)
)

type UsersRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewUsersRepository() *UsersRepository {
	return &UsersRepository{users: make(map[string]model.User)}
}

func (r *UsersRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	for _, u := range r.users {
		if u.Email == user.Email {
			return model.ErrEmailTaken
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UsersRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r *UsersRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &u, nil
}

// Delete ユーザーを削除する
func (r *UsersRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

type LocationsRepository struct {
	mu        sync.RWMutex
	locations []model.Location
}

func NewLocationsRepository() *LocationsRepository {
	return &LocationsRepository{}
}

func (r *LocationsRepository) Create(_ context.Context, location *model.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if location.ID == "" {
		location.ID = uuid.NewString()
	}
	if location.CreatedAt.IsZero() {
		location.CreatedAt = time.Now().UTC()
	}
	r.locations = append(r.locations, *location)
	return nil
}

func (r *LocationsRepository) GetLatest(_ context.Context, userID string) (*model.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *model.Location
	for i := range r.locations {
		l := r.locations[i]
		if l.UserID != userID {
			continue
		}
		if latest == nil || !l.CreatedAt.Before(latest.CreatedAt) {
			latest = &l
		}
	}
	if latest == nil {
		return nil, model.ErrLocationNotFound
	}
	return latest, nil
}

type EventsRepository struct {
	mu     sync.RWMutex
	events []model.Event
}

func NewEventsRepository() *EventsRepository {
	return &EventsRepository{}
}

func (r *EventsRepository) Create(_ context.Context, event *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *EventsRepository) ListByUser(_ context.Context, userID string) ([]model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.Event{}
	for _, e := range r.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

type NotificationsRepository struct {
	mu    sync.RWMutex
	items []model.Notification
}

func NewNotificationsRepository() *NotificationsRepository {
	return &NotificationsRepository{}
}

func (r *NotificationsRepository) Create(_ context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	r.items = append(r.items, *n)
	return nil
}

func (r *NotificationsRepository) ListByEmail(_ context.Context, email string) ([]model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.Notification{}
	for _, n := range r.items {
		if n.UserEmail == email {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *NotificationsRepository) MarkRead(_ context.Context, email, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id && r.items[i].UserEmail == email {
			r.items[i].Read = true
			return nil
		}
	}
	return model.ErrNotFound
}

type ScenesRepository struct {
	Scenes []model.Scene
}

func (r *ScenesRepository) List(_ context.Context, maxCloudCover float64) ([]model.Scene, error) {
	out := []model.Scene{}
	for _, s := range r.Scenes {
		if s.CloudCover <= maxCloudCover {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AcquiredAt.After(out[j].AcquiredAt) })
	return out, nil
}
