package service

import (
	"fmt"
	"time"

	"LandWatch-App/internal/domain/model"
)

// PassPredictor 観測地点上空の通過（仰角が閾値以上の区間）を予測する
type PassPredictor struct {
	step            time.Duration
	minElevationDeg float64
}

// NewPassPredictor 新しいPassPredictorを作成
func NewPassPredictor(step time.Duration, minElevationDeg float64) *PassPredictor {
	if step <= 0 {
		step = 30 * time.Second
	}
	return &PassPredictor{step: step, minElevationDeg: minElevationDeg}
}

// Predict [from, from+window] の間の通過を開始時刻順に返す
// 開始・終了時刻は二分探索で1秒単位まで詰める
func (pp *PassPredictor) Predict(tle *model.TLE, observer model.LatLng, from time.Time, window time.Duration) ([]model.Pass, error) {
	prop, err := NewPropagator(tle)
	if err != nil {
		return nil, err
	}

	above := func(t time.Time) (float64, bool, error) {
		el, err := prop.Elevation(t, observer, 0)
		if err != nil {
			return 0, false, err
		}
		return el, el >= pp.minElevationDeg, nil
	}

	var passes []model.Pass
	var current *model.Pass
	end := from.Add(window)
	prev := from

	for t := from; !t.After(end); t = t.Add(pp.step) {
		el, up, err := above(t)
		if err != nil {
			return nil, fmt.Errorf("通過予測に失敗: %w", err)
		}

		switch {
		case up && current == nil:
			start := t
			if t.After(from) {
				start = pp.refine(prev, t, above, true)
			}
			current = &model.Pass{
				Satellite:       tle.Name,
				CatalogNumber:   tle.CatalogNumber,
				Start:           start,
				MaxElevationDeg: el,
				MaxAt:           t,
			}
		case up && current != nil:
			if el > current.MaxElevationDeg {
				current.MaxElevationDeg = el
				current.MaxAt = t
			}
		case !up && current != nil:
			current.End = pp.refine(prev, t, above, false)
			passes = append(passes, *current)
			current = nil
		}
		prev = t
	}

	if current != nil {
		current.End = prev
		passes = append(passes, *current)
	}
	return passes, nil
}

// refine lo と hi の間で仰角が閾値をまたぐ時刻を探す
// rising なら最初に閾値以上になる時刻、そうでなければ最後に閾値以上である時刻を返す
func (pp *PassPredictor) refine(lo, hi time.Time, above func(time.Time) (float64, bool, error), rising bool) time.Time {
	for hi.Sub(lo) > time.Second {
		mid := lo.Add(hi.Sub(lo) / 2).Truncate(time.Second)
		if !mid.After(lo) {
			break
		}
		_, up, err := above(mid)
		if err != nil {
			break
		}
		if up == rising {
			hi = mid
		} else {
			lo = mid
		}
	}
	if rising {
		return hi
	}
	return lo
}
