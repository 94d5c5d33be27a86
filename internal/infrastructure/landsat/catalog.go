package landsat

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/logging"
)

const mtlPattern = "*_MTL.txt"

// Catalog データディレクトリ内のMTLファイルをシーンカタログとして扱う
type Catalog struct {
	dir    string
	logger logging.Logger
}

// NewCatalog 新しいCatalogを作成
func NewCatalog(dir string, logger logging.Logger) *Catalog {
	if logger == nil {
		logger = logging.Noop()
	}
	return &Catalog{dir: dir, logger: logger}
}

// Metadata 指定ファイルのメタデータ（ファイルがなければ model.ErrSceneFileNotFound）
func (c *Catalog) Metadata(fileName string) (*model.LandsatMetadata, error) {
	path := filepath.Join(c.dir, filepath.Base(fileName))
	mtl, err := ParseMTLFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", model.ErrSceneFileNotFound, path)
		}
		return nil, fmt.Errorf("MTLファイルの読み込みに失敗: %w", err)
	}
	md := mtl.Metadata()
	return &md, nil
}

// List 雲量が maxCloudCover 以下のシーンを撮影日時の新しい順に返す
// 解析できないファイルは警告を出して飛ばす
func (c *Catalog) List(ctx context.Context, maxCloudCover float64) ([]model.Scene, error) {
	if _, err := os.Stat(c.dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.Scene{}, nil
		}
		return nil, err
	}

	paths, err := filepath.Glob(filepath.Join(c.dir, mtlPattern))
	if err != nil {
		return nil, err
	}

	scenes := make([]model.Scene, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mtl, err := ParseMTLFile(path)
		if err != nil {
			c.logger.Warn(ctx, "MTLファイルを読み込めません", logging.String("path", path), logging.Err(err))
			continue
		}
		scene, err := mtl.Scene()
		if err != nil {
			c.logger.Warn(ctx, "MTLファイルからシーンを作れません", logging.String("path", path), logging.Err(err))
			continue
		}
		if scene.ID == "" {
			scene.ID = filepath.Base(path)
		}
		if scene.CloudCover <= maxCloudCover {
			scenes = append(scenes, scene)
		}
	}

	sort.SliceStable(scenes, func(i, j int) bool {
		return scenes[i].AcquiredAt.After(scenes[j].AcquiredAt)
	})
	return scenes, nil
}
