package application

import (
	"context"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/domain/repository"
)

// NotificationsService 通知フィード
type NotificationsService interface {
	List(ctx context.Context, user *model.AuthUser) (*model.NotificationsResponse, error)
	MarkRead(ctx context.Context, user *model.AuthUser, id string) error
}

type notificationsServiceImpl struct {
	notificationsRepo repository.NotificationsRepository
}

// NewNotificationsService NotificationsServiceの新しいインスタンスを作成
func NewNotificationsService(notificationsRepo repository.NotificationsRepository) NotificationsService {
	return &notificationsServiceImpl{notificationsRepo: notificationsRepo}
}

func (s *notificationsServiceImpl) List(ctx context.Context, user *model.AuthUser) (*model.NotificationsResponse, error) {
	items, err := s.notificationsRepo.ListByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	resp := &model.NotificationsResponse{Notifications: items}
	if resp.Notifications == nil {
		resp.Notifications = []model.Notification{}
	}
	for _, n := range items {
		if !n.Read {
			resp.Unread++
		}
	}
	return resp, nil
}

func (s *notificationsServiceImpl) MarkRead(ctx context.Context, user *model.AuthUser, id string) error {
	return s.notificationsRepo.MarkRead(ctx, user.Email, id)
}
