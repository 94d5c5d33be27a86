package repository

import (
	"sort"

	"LandWatch-App/internal/domain/model"
)

// sortNewestFirst 作成日時の新しい順に並べ替える
func sortNewestFirst(items []model.Notification) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
