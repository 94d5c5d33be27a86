package application

import (
	"context"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/domain/repository"
)

// SceneMetadataReader MTLファイルのメタデータ取得元
type SceneMetadataReader interface {
	Metadata(fileName string) (*model.LandsatMetadata, error)
}

// LandsatService データパネルのメタデータとシーン一覧
type LandsatService interface {
	// Metadata 設定されたMTLファイルのメタデータ（なければ model.ErrSceneFileNotFound）
	Metadata(ctx context.Context) (*model.LandsatMetadata, error)
	Scenes(ctx context.Context, maxCloudCover float64) ([]model.Scene, error)
}

type landsatServiceImpl struct {
	reader     SceneMetadataReader
	scenesRepo repository.ScenesRepository
	mtlFile    string
}

// NewLandsatService LandsatServiceの新しいインスタンスを作成
func NewLandsatService(reader SceneMetadataReader, scenesRepo repository.ScenesRepository, mtlFile string) LandsatService {
	return &landsatServiceImpl{
		reader:     reader,
		scenesRepo: scenesRepo,
		mtlFile:    mtlFile,
	}
}

func (s *landsatServiceImpl) Metadata(ctx context.Context) (*model.LandsatMetadata, error) {
	return s.reader.Metadata(s.mtlFile)
}

func (s *landsatServiceImpl) Scenes(ctx context.Context, maxCloudCover float64) ([]model.Scene, error) {
	scenes, err := s.scenesRepo.List(ctx, maxCloudCover)
	if err != nil {
		return nil, err
	}
	if scenes == nil {
		scenes = []model.Scene{}
	}
	return scenes, nil
}
