package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/domain/repository"
	"LandWatch-App/internal/domain/service"
	"LandWatch-App/internal/logging"
)

const passNotificationTitle = "Landsat Satellite Capturing Data for your location"

// PassScheduler 通知ジョブの登録先
type PassScheduler interface {
	Schedule(email string, at time.Time, title, message string) (string, bool)
}

type PassNotificationUseCase interface {
	// PredictPasses ユーザーの最新位置の上空を通過する予定を予測し、通知を登録して返す
	PredictPasses(ctx context.Context, user *model.AuthUser) ([]model.Pass, error)
}

// PassNotificationConfig 予測対象と予測範囲
type PassNotificationConfig struct {
	Catalogs []int
	Window   time.Duration
}

type passNotificationUseCaseImpl struct {
	locationsRepo repository.LocationsRepository
	tleProvider   repository.TLEProvider
	predictor     *service.PassPredictor
	scheduler     PassScheduler
	cfg           PassNotificationConfig
	logger        logging.Logger
	now           func() time.Time
}

// NewPassNotificationUseCase 新しいPassNotificationUseCaseインスタンスを作成
func NewPassNotificationUseCase(
	locationsRepo repository.LocationsRepository,
	tleProvider repository.TLEProvider,
	predictor *service.PassPredictor,
	scheduler PassScheduler,
	cfg PassNotificationConfig,
	logger logging.Logger,
) PassNotificationUseCase {
	if logger == nil {
		logger = logging.Noop()
	}
	return &passNotificationUseCaseImpl{
		locationsRepo: locationsRepo,
		tleProvider:   tleProvider,
		predictor:     predictor,
		scheduler:     scheduler,
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
	}
}

func (u *passNotificationUseCaseImpl) PredictPasses(ctx context.Context, user *model.AuthUser) ([]model.Pass, error) {
	location, err := u.locationsRepo.GetLatest(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	from := u.now().UTC().Truncate(time.Second)
	observer := location.ToLatLng()

	var (
		mu     sync.Mutex
		passes []model.Pass
		failed int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, catalog := range u.cfg.Catalogs {
		g.Go(func() error {
			tle, err := u.tleProvider.FetchTLE(gctx, catalog)
			if err == nil {
				var found []model.Pass
				found, err = u.predictor.Predict(tle, observer, from, u.cfg.Window)
				if err == nil {
					mu.Lock()
					passes = append(passes, found...)
					mu.Unlock()
					return nil
				}
			}
			u.logger.Warn(gctx, "通過予測に失敗した衛星をスキップします",
				logging.Int("catalog_number", catalog), logging.Err(err))
			mu.Lock()
			failed++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if failed > 0 && failed == len(u.cfg.Catalogs) {
		return nil, errors.New("すべての衛星で通過予測に失敗しました")
	}
	if len(passes) == 0 {
		return nil, model.ErrNoPasses
	}

	sort.SliceStable(passes, func(i, j int) bool {
		return passes[i].Start.Before(passes[j].Start)
	})

	advance := time.Duration(location.NotificationAdvance) * time.Hour
	scheduled := 0
	for _, p := range passes {
		if _, ok := u.scheduler.Schedule(user.Email, p.Start.Add(-advance), passNotificationTitle, passMessage(p)); ok {
			scheduled++
		}
	}
	u.logger.Info(ctx, "通過予測を完了しました",
		logging.Int("passes", len(passes)), logging.Int("scheduled", scheduled))

	return passes, nil
}

func passMessage(p model.Pass) string {
	return fmt.Sprintf("%s will pass over your location from %s to %s UTC (max elevation %.1f°).",
		p.Satellite, p.Start.UTC().Format("2006-01-02 15:04:05"), p.End.UTC().Format("15:04:05"), p.MaxElevationDeg)
}
