package repository

import (
	"LandWatch-App/internal/domain/model"
)

// GridCellsRepository WRS-2グリッドセルの読み取り専用インデックス
type GridCellsRepository interface {
	// GetByPathRow PATH/ROWでセルを取得
	GetByPathRow(path, row int) (*model.GridCell, bool)
	// GetContainingPoint 指定座標を含むセルを取得（含むセルがなければ model.ErrNoContainingCell）
	GetContainingPoint(lat, lng float64) (*model.GridCell, error)
	// Len セル数
	Len() int
}
