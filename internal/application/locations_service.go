package application

import (
	"context"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/domain/repository"
)

// LocationsService 観測地点の保存・取得
type LocationsService interface {
	SaveLocation(ctx context.Context, user *model.AuthUser, req *model.SaveLocationRequest) (*model.Location, error)
	// LastLocation 最後に保存した位置（なければ model.ErrLocationNotFound）
	LastLocation(ctx context.Context, user *model.AuthUser) (*model.Location, error)
}

type locationsServiceImpl struct {
	locationsRepo repository.LocationsRepository
}

// NewLocationsService LocationsServiceの新しいインスタンスを作成
func NewLocationsService(locationsRepo repository.LocationsRepository) LocationsService {
	return &locationsServiceImpl{locationsRepo: locationsRepo}
}

func (s *locationsServiceImpl) SaveLocation(ctx context.Context, user *model.AuthUser, req *model.SaveLocationRequest) (*model.Location, error) {
	location := &model.Location{
		UserID:              user.ID,
		Latitude:            *req.Latitude,
		Longitude:           *req.Longitude,
		NotificationAdvance: model.DefaultNotificationAdvance,
		CloudCoverage:       model.DefaultCloudCoverage,
	}
	if req.NotificationAdvance != nil {
		location.NotificationAdvance = *req.NotificationAdvance
	}
	if req.CloudCoverage != nil {
		location.CloudCoverage = *req.CloudCoverage
	}

	if err := s.locationsRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *locationsServiceImpl) LastLocation(ctx context.Context, user *model.AuthUser) (*model.Location, error) {
	return s.locationsRepo.GetLatest(ctx, user.ID)
}
