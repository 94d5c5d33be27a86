package model

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// WRS2PathCount WRS-2の1周期あたりのパス数（233でパス1に戻る）
const WRS2PathCount = 233

// GridCell WRS-2グリッドの1シーン（PATH/ROWで識別されるポリゴン）
type GridCell struct {
	Path     int                `json:"path"` // WRS-2パス番号
	Row      int                `json:"row"`  // WRS-2ロウ番号
	Geometry orb.Geometry       `json:"-"`    // Polygon または MultiPolygon（[経度, 緯度]）
	Props    geojson.Properties `json:"-"`    // 元データのプロパティ（PATH/ROWを含む）
}

// GridKey PATH/ROWの組
type GridKey struct {
	Path int
	Row  int
}

// Key セルのGridKeyを返す
func (c *GridCell) Key() GridKey {
	return GridKey{Path: c.Path, Row: c.Row}
}

// ToFeature 地図表示用のGeoJSON Featureに変換（ツールチップ用にPATH/ROWを必ず含める）
func (c *GridCell) ToFeature() *geojson.Feature {
	f := geojson.NewFeature(c.Geometry)
	for k, v := range c.Props {
		f.Properties[k] = v
	}
	f.Properties["PATH"] = c.Path
	f.Properties["ROW"] = c.Row
	return f
}

// GridNeighborhood 検索点を含むセルとその周囲8セル
type GridNeighborhood struct {
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Found     bool        `json:"found"`
	Center    *GridCell   `json:"center,omitempty"`
	Neighbors []*GridCell `json:"neighbors"`
}

// Cells 中心セルを先頭にした全セルを返す
func (n *GridNeighborhood) Cells() []*GridCell {
	if n == nil || n.Center == nil {
		return nil
	}
	cells := make([]*GridCell, 0, 1+len(n.Neighbors))
	cells = append(cells, n.Center)
	return append(cells, n.Neighbors...)
}

// FeatureCollection 地図ウィジェットに渡すFeatureCollectionを作成
func (n *GridNeighborhood) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, cell := range n.Cells() {
		fc.Append(cell.ToFeature())
	}
	return fc
}
