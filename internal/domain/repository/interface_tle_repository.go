package repository

import (
	"context"

	"LandWatch-App/internal/domain/model"
)

// TLEProvider 軌道要素の取得元
type TLEProvider interface {
	FetchTLE(ctx context.Context, catalogNumber int) (*model.TLE, error)
}
