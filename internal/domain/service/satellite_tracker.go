package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/domain/repository"
	"LandWatch-App/internal/logging"
)

// TrackerObserver 追跡ループの結果の記録先（メトリクス）
type TrackerObserver interface {
	ObserveTrackerRefresh(positions int, failed []int)
}

// SatelliteTracker 追跡対象の衛星位置を一定間隔で計算し、最新の一覧を保持する
type SatelliteTracker struct {
	provider repository.TLEProvider
	catalogs []int
	interval time.Duration
	now      func() time.Time
	logger   logging.Logger
	observer TrackerObserver

	mu        sync.RWMutex
	positions []model.SatellitePosition
}

// TrackerHandle Start が返す停止用ハンドル
type TrackerHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Stop タイマーを止め、ループの終了を待つ（複数回呼んでもよい）
func (h *TrackerHandle) Stop() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done ループ終了時に閉じられるチャネル
func (h *TrackerHandle) Done() <-chan struct{} {
	return h.done
}

// NewSatelliteTracker 新しいSatelliteTrackerを作成
func NewSatelliteTracker(provider repository.TLEProvider, catalogs []int, interval time.Duration, logger logging.Logger, observer TrackerObserver) *SatelliteTracker {
	if logger == nil {
		logger = logging.Noop()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &SatelliteTracker{
		provider: provider,
		catalogs: append([]int(nil), catalogs...),
		interval: interval,
		now:      time.Now,
		logger:   logger,
		observer: observer,
	}
}

// Start 直ちに1回更新し、その後 interval ごとに更新する
func (t *SatelliteTracker) Start(ctx context.Context) *TrackerHandle {
	ctx, cancel := context.WithCancel(ctx)
	h := &TrackerHandle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		t.Refresh(ctx)
		for {
			select {
			case <-ctx.Done():
				t.logger.Info(context.Background(), "衛星追跡を停止しました")
				return
			case <-ticker.C:
				t.Refresh(ctx)
			}
		}
	}()
	return h
}

// Refresh 全衛星の位置を並行して計算し、一覧を上書きする
// 失敗した衛星はこの回だけ除外する。全衛星が失敗した場合は前回の一覧を残す
func (t *SatelliteTracker) Refresh(ctx context.Context) {
	at := t.now()
	results := make([]*model.SatellitePosition, len(t.catalogs))
	errs := make([]error, len(t.catalogs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, catalog := range t.catalogs {
		g.Go(func() error {
			pos, err := t.position(gctx, catalog, at)
			results[i], errs[i] = pos, err
			return nil
		})
	}
	_ = g.Wait()

	positions := make([]model.SatellitePosition, 0, len(results))
	var failed []int
	for i, pos := range results {
		if errs[i] != nil {
			failed = append(failed, t.catalogs[i])
			if ctx.Err() == nil {
				t.logger.Warn(ctx, "衛星位置の更新に失敗",
					logging.Int("catalog_number", t.catalogs[i]), logging.Err(errs[i]))
			}
			continue
		}
		positions = append(positions, *pos)
	}

	if len(positions) > 0 || len(t.catalogs) == 0 {
		t.mu.Lock()
		t.positions = positions
		t.mu.Unlock()
	}
	if t.observer != nil {
		t.observer.ObserveTrackerRefresh(len(positions), failed)
	}
}

// Positions 最新の位置一覧のコピー
func (t *SatelliteTracker) Positions() []model.SatellitePosition {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]model.SatellitePosition, len(t.positions))
	copy(out, t.positions)
	return out
}

func (t *SatelliteTracker) position(ctx context.Context, catalog int, at time.Time) (*model.SatellitePosition, error) {
	tle, err := t.provider.FetchTLE(ctx, catalog)
	if err != nil {
		return nil, err
	}
	prop, err := NewPropagator(tle)
	if err != nil {
		return nil, err
	}
	pos, err := prop.Position(at)
	if err != nil {
		return nil, err
	}
	return &pos, nil
}
