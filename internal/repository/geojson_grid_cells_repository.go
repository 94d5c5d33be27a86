package repository

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/domain/repository"
	"LandWatch-App/internal/logging"
)

// GeoJSONGridCellsRepository WRS-2グリッドのイミュータブルなインメモリインデックス
// セルは (path, row) の昇順で保持し、複数セルが点を含む場合は最小の (path, row) を返す
type GeoJSONGridCellsRepository struct {
	entries []gridEntry
	byKey   map[model.GridKey]*model.GridCell
}

// gridEntry 点判定用に前処理したセル
type gridEntry struct {
	cell  *model.GridCell
	geom  orb.Geometry // 判定用ジオメトリ（日付変更線をまたぐ場合は0..360度に変換済み）
	bound orb.Bound
	// wrapped 日付変更線をまたぐセル。負の経度の検索点は+360して判定する
	wrapped bool
}

// LoadGeoJSONGridCellsRepository GeoJSONファイルからグリッドを読み込む
func LoadGeoJSONGridCellsRepository(path string, logger logging.Logger) (*GeoJSONGridCellsRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("WRS-2グリッドファイルの読み込み失敗: %w", err)
	}
	return ParseGeoJSONGridCells(data, logger)
}

// ParseGeoJSONGridCells PATH/ROWプロパティを持つFeatureCollectionをパースする
func ParseGeoJSONGridCells(data []byte, logger logging.Logger) (*GeoJSONGridCellsRepository, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("WRS-2グリッドのGeoJSONパース失敗: %w", err)
	}

	cells := make([]*model.GridCell, 0, len(fc.Features))
	for i, f := range fc.Features {
		cell, err := featureToGridCell(f)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		cells = append(cells, cell)
	}
	return NewGridCellsRepository(cells, logger), nil
}

// NewGridCellsRepository セル一覧からインデックスを構築する
// 同じ (path, row) が複数ある場合は最初のセルを採用する
func NewGridCellsRepository(cells []*model.GridCell, logger logging.Logger) *GeoJSONGridCellsRepository {
	if logger == nil {
		logger = logging.Noop()
	}

	sorted := make([]*model.GridCell, len(cells))
	copy(sorted, cells)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Path != sorted[j].Path {
			return sorted[i].Path < sorted[j].Path
		}
		return sorted[i].Row < sorted[j].Row
	})

	r := &GeoJSONGridCellsRepository{
		entries: make([]gridEntry, 0, len(sorted)),
		byKey:   make(map[model.GridKey]*model.GridCell, len(sorted)),
	}
	for _, cell := range sorted {
		if _, dup := r.byKey[cell.Key()]; dup {
			logger.Warn(context.Background(), "重複したPATH/ROWを無視します",
				logging.Int("path", cell.Path), logging.Int("row", cell.Row))
			continue
		}
		r.byKey[cell.Key()] = cell
		r.entries = append(r.entries, newGridEntry(cell))
	}
	return r
}

var _ repository.GridCellsRepository = (*GeoJSONGridCellsRepository)(nil)

func (r *GeoJSONGridCellsRepository) GetByPathRow(path, row int) (*model.GridCell, bool) {
	cell, ok := r.byKey[model.GridKey{Path: path, Row: row}]
	return cell, ok
}

// GetContainingPoint レイキャスティング（偶奇規則）で点を含むセルを探す
// 境界上の点は内側として扱う
func (r *GeoJSONGridCellsRepository) GetContainingPoint(lat, lng float64) (*model.GridCell, error) {
	pt := orb.Point{lng, lat}
	for i := range r.entries {
		if r.entries[i].contains(pt) {
			return r.entries[i].cell, nil
		}
	}
	return nil, fmt.Errorf("%w: (%.6f, %.6f)", model.ErrNoContainingCell, lat, lng)
}

func (r *GeoJSONGridCellsRepository) Len() int {
	return len(r.entries)
}

func newGridEntry(cell *model.GridCell) gridEntry {
	e := gridEntry{cell: cell, geom: cell.Geometry, bound: cell.Geometry.Bound()}
	if e.bound.Max.Lon()-e.bound.Min.Lon() > 180 {
		e.wrapped = true
		e.geom = shiftLongitudes(orb.Clone(cell.Geometry))
		e.bound = e.geom.Bound()
	}
	return e
}

func (e *gridEntry) contains(pt orb.Point) bool {
	if e.wrapped && pt[0] < 0 {
		pt[0] += 360
	}
	if !e.bound.Contains(pt) {
		return false
	}
	switch g := e.geom.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, pt)
	}
	return false
}

// shiftLongitudes 負の経度を+360して0..360度の座標系に移す
func shiftLongitudes(g orb.Geometry) orb.Geometry {
	shiftRing := func(ring orb.Ring) {
		for i := range ring {
			if ring[i][0] < 0 {
				ring[i][0] += 360
			}
		}
	}
	switch g := g.(type) {
	case orb.Polygon:
		for _, ring := range g {
			shiftRing(ring)
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			for _, ring := range poly {
				shiftRing(ring)
			}
		}
	}
	return g
}

func featureToGridCell(f *geojson.Feature) (*model.GridCell, error) {
	switch f.Geometry.(type) {
	case orb.Polygon, orb.MultiPolygon:
	default:
		return nil, fmt.Errorf("未対応のジオメトリ型です: %T", f.Geometry)
	}

	path, err := intProperty(f.Properties, "PATH")
	if err != nil {
		return nil, err
	}
	row, err := intProperty(f.Properties, "ROW")
	if err != nil {
		return nil, err
	}

	return &model.GridCell{
		Path:     path,
		Row:      row,
		Geometry: f.Geometry,
		Props:    f.Properties.Clone(),
	}, nil
}

func intProperty(props geojson.Properties, key string) (int, error) {
	v, ok := props[key]
	if !ok {
		return 0, fmt.Errorf("プロパティ %s がありません", key)
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("プロパティ %s が整数ではありません: %v", key, n)
		}
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	}
	return 0, fmt.Errorf("プロパティ %s の型が不正です: %T", key, v)
}
