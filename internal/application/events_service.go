package application

import (
	"context"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/domain/repository"
)

// EventsService ユーザーのカレンダーイベント
type EventsService interface {
	// AddEvent イベントを登録（終了が開始より前なら model.ErrInvalidEventRange）
	AddEvent(ctx context.Context, user *model.AuthUser, req *model.AddEventRequest) (*model.Event, error)
	// ListEvents 開始時刻順
	ListEvents(ctx context.Context, user *model.AuthUser) ([]model.Event, error)
}

type eventsServiceImpl struct {
	eventsRepo repository.EventsRepository
}

// NewEventsService EventsServiceの新しいインスタンスを作成
func NewEventsService(eventsRepo repository.EventsRepository) EventsService {
	return &eventsServiceImpl{eventsRepo: eventsRepo}
}

func (s *eventsServiceImpl) AddEvent(ctx context.Context, user *model.AuthUser, req *model.AddEventRequest) (*model.Event, error) {
	if req.EndTime.Before(req.StartTime) {
		return nil, model.ErrInvalidEventRange
	}

	event := &model.Event{
		UserID:    user.ID,
		Title:     req.Title,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
	}
	if err := s.eventsRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventsServiceImpl) ListEvents(ctx context.Context, user *model.AuthUser) ([]model.Event, error) {
	return s.eventsRepo.ListByUser(ctx, user.ID)
}
