package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"LandWatch-App/internal/application"
	"LandWatch-App/internal/config"
	"LandWatch-App/internal/domain/repository"
	"LandWatch-App/internal/domain/service"
	"LandWatch-App/internal/handler"
	"LandWatch-App/internal/infrastructure/auth"
	"LandWatch-App/internal/infrastructure/celestrak"
	"LandWatch-App/internal/infrastructure/database"
	"LandWatch-App/internal/infrastructure/firestore"
	"LandWatch-App/internal/infrastructure/landsat"
	"LandWatch-App/internal/infrastructure/mail"
	"LandWatch-App/internal/logging"
	"LandWatch-App/internal/observability"
	repoImpl "LandWatch-App/internal/repository"
	"LandWatch-App/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})

	if err := run(cfg, logger); err != nil {
		logger.Error(context.Background(), "サーバーが異常終了しました", logging.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics, err := observability.NewCollector(nil)
	if err != nil {
		return fmt.Errorf("メトリクスの初期化に失敗: %w", err)
	}

	// PostgreSQL（マイグレーション込み）
	pg, err := database.NewPostgreSQLClient(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pg.Close()
	logger.Info(ctx, "PostgreSQLに接続しました")

	usersRepo := repoImpl.NewPostgresUsersRepository(pg)
	locationsRepo := repoImpl.NewPostgresLocationsRepository(pg)
	eventsRepo := repoImpl.NewPostgresEventsRepository(pg)

	// 通知フィード: Firestoreが設定されていればFirestore、なければPostgreSQL
	var notificationsRepo repository.NotificationsRepository
	if cfg.FirestoreProjectID != "" {
		fs, err := firestore.NewFirestoreClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredFile, logger)
		if err != nil {
			return err
		}
		defer fs.Close()
		notificationsRepo = repoImpl.NewFirestoreNotificationsRepository(fs.GetClient())
	} else {
		notificationsRepo = repoImpl.NewPostgresNotificationsRepository(pg)
	}

	// シーンカタログ: Supabaseが設定されていればSupabase、なければMTLディレクトリ
	catalog := landsat.NewCatalog(cfg.LandsatDataDir, logger)
	var scenesRepo repository.ScenesRepository = catalog
	if cfg.SupabaseURL != "" && cfg.SupabaseAnonKey != "" {
		sb, err := database.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		if err != nil {
			return err
		}
		scenesRepo = repoImpl.NewSupabaseScenesRepository(sb)
	}

	// WRS-2グリッド
	gridRepo, err := repoImpl.LoadGeoJSONGridCellsRepository(cfg.WRS2GridFile, logger)
	if err != nil {
		return fmt.Errorf("WRS-2グリッドの読み込みに失敗: %w", err)
	}
	logger.Info(ctx, "WRS-2グリッドを読み込みました", logging.Int("cells", gridRepo.Len()))
	resolver := service.NewGridResolver(gridRepo, logger, metrics)

	// 衛星追跡
	tleProvider := celestrak.NewTLEProvider(cfg.TLEBaseURL, cfg.TLECacheTTL)
	tracker := service.NewSatelliteTracker(tleProvider, cfg.TrackedSatellites, cfg.TrackerInterval, logger, metrics)
	trackerHandle := tracker.Start(ctx)
	defer trackerHandle.Stop()

	// 通知
	var mailer service.Mailer
	if cfg.SMTPEnabled() {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	} else {
		logger.Warn(ctx, "SMTPが設定されていないため通知メールはログ出力のみになります")
		mailer = mail.NewLogMailer(logger)
	}
	scheduler := service.NewNotificationScheduler(mailer, notificationsRepo, logger, metrics)
	defer scheduler.Shutdown()

	// Dependency injection
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := application.NewAuthService(usersRepo, locationsRepo, tokens)
	passUseCase := usecase.NewPassNotificationUseCase(
		locationsRepo,
		tleProvider,
		service.NewPassPredictor(cfg.PassStep, cfg.MinElevationDeg),
		scheduler,
		usecase.PassNotificationConfig{Catalogs: cfg.TrackedSatellites, Window: cfg.PassWindow},
		logger,
	)

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handler.RouterDeps{
		Logger:        logger,
		Metrics:       metrics,
		AuthService:   authService,
		Auth:          handler.NewAuthHandler(authService, logger),
		Locations:     handler.NewLocationsHandler(application.NewLocationsService(locationsRepo), logger),
		Data:          handler.NewDataHandler(application.NewLandsatService(catalog, scenesRepo, cfg.LandsatMTLFile), application.NewEventsService(eventsRepo), passUseCase, logger),
		Notifications: handler.NewNotificationsHandler(application.NewNotificationsService(notificationsRepo), logger),
		Grid:          handler.NewGridHandler(resolver, logger),
		Satellites:    handler.NewSatellitesHandler(tracker),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "LandWatch-App server starting", logging.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTPサーバーの起動に失敗: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "シャットダウンしています")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
