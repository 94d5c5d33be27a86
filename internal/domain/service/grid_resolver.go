package service

import (
	"context"
	"errors"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/domain/repository"
	"LandWatch-App/internal/logging"
)

// GridLookupObserver グリッド検索結果の記録先（メトリクス）
type GridLookupObserver interface {
	ObserveGridLookup(found bool)
}

// neighborOffsets 周囲8セルの (path, row) オフセット。結果はこの順で並ぶ
var neighborOffsets = [8]model.GridKey{
	{Path: 0, Row: -1},
	{Path: 0, Row: 1},
	{Path: -1, Row: 0},
	{Path: 1, Row: 0},
	{Path: -1, Row: -1},
	{Path: -1, Row: 1},
	{Path: 1, Row: -1},
	{Path: 1, Row: 1},
}

// GridResolver 検索点を含むWRS-2セルと周囲8セルを求める
type GridResolver struct {
	cells    repository.GridCellsRepository
	logger   logging.Logger
	observer GridLookupObserver
}

// NewGridResolver 新しいGridResolverを作成（observerはnil可）
func NewGridResolver(cells repository.GridCellsRepository, logger logging.Logger, observer GridLookupObserver) *GridResolver {
	if logger == nil {
		logger = logging.Noop()
	}
	return &GridResolver{cells: cells, logger: logger, observer: observer}
}

// Resolve 中心セルと存在する近傍セルを返す
// 点を含むセルがなければログに記録して空の結果（Found=false）を返す
func (r *GridResolver) Resolve(ctx context.Context, lat, lng float64) *model.GridNeighborhood {
	result := &model.GridNeighborhood{
		Latitude:  lat,
		Longitude: lng,
		Neighbors: []*model.GridCell{},
	}

	center, err := r.cells.GetContainingPoint(lat, lng)
	if err != nil {
		if !errors.Is(err, model.ErrNoContainingCell) {
			r.logger.Error(ctx, "グリッドセルの検索に失敗", logging.Err(err))
		} else {
			r.logger.Warn(ctx, "検索点を含むグリッドセルがありません",
				logging.Float("lat", lat), logging.Float("lng", lng))
		}
		r.observe(false)
		return result
	}

	result.Found = true
	result.Center = center
	for _, off := range neighborOffsets {
		if cell, ok := r.neighbor(center, off); ok {
			result.Neighbors = append(result.Neighbors, cell)
		}
	}
	r.observe(true)
	return result
}

// Cell PATH/ROWでセルを1つ取得
func (r *GridResolver) Cell(path, row int) (*model.GridCell, bool) {
	return r.cells.GetByPathRow(path, row)
}

// neighbor オフセット位置のセルを探す。見つからず中心が1..233の範囲なら周回後のパスも探す
func (r *GridResolver) neighbor(center *model.GridCell, off model.GridKey) (*model.GridCell, bool) {
	path, row := center.Path+off.Path, center.Row+off.Row
	if cell, ok := r.cells.GetByPathRow(path, row); ok {
		return cell, true
	}
	if off.Path == 0 || center.Path < 1 || center.Path > model.WRS2PathCount {
		return nil, false
	}
	if wrapped := wrapPath(path); wrapped != path {
		return r.cells.GetByPathRow(wrapped, row)
	}
	return nil, false
}

func (r *GridResolver) observe(found bool) {
	if r.observer != nil {
		r.observer.ObserveGridLookup(found)
	}
}

// wrapPath パス番号は233の次が1に戻る
func wrapPath(path int) int {
	switch {
	case path < 1:
		return path + model.WRS2PathCount
	case path > model.WRS2PathCount:
		return path - model.WRS2PathCount
	}
	return path
}
