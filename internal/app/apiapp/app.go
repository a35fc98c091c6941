package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sonu9716/Dating-app-sub000/internal/config"
	"github.com/sonu9716/Dating-app-sub000/internal/jobs/cleanup"
	pgrepo "github.com/sonu9716/Dating-app-sub000/internal/repo/postgres"
	redrepo "github.com/sonu9716/Dating-app-sub000/internal/repo/redis"
	authsvc "github.com/sonu9716/Dating-app-sub000/internal/services/auth"
	contactssvc "github.com/sonu9716/Dating-app-sub000/internal/services/contacts"
	matchessvc "github.com/sonu9716/Dating-app-sub000/internal/services/matches"
	ratesvc "github.com/sonu9716/Dating-app-sub000/internal/services/rate"
	safetysvc "github.com/sonu9716/Dating-app-sub000/internal/services/safety"
	swipesvc "github.com/sonu9716/Dating-app-sub000/internal/services/swipes"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	cleanupJob *cleanup.Job
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	pool, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("init postgres pool: %w", err)
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	rateRepo := redrepo.NewRateRepo(redisClient)

	swipeRepo := pgrepo.NewSwipeRepo(pool)
	matchRepo := pgrepo.NewMatchRepo(pool)
	sessionRepo := pgrepo.NewSafetySessionRepo(pool)
	eventRepo := pgrepo.NewEmergencyEventRepo(pool)
	contactRepo := pgrepo.NewContactRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret)
	rateLimiter := ratesvc.NewLimiter(rateRepo, cfg.Limits.SwipesPerMinute, cfg.Limits.SwipesPer10Seconds)

	swipeService := swipesvc.NewService(swipesvc.Dependencies{
		DecisionStore: swipeRepo,
		MatchStore:    matchRepo,
		RateLimiter:   rateLimiter,
	})
	matchesService := matchessvc.NewService(matchRepo)
	contactsService := contactssvc.NewService(contactRepo)
	safetyService := safetysvc.NewService(safetysvc.Dependencies{
		SessionStore: sessionRepo,
		MatchStore:   matchRepo,
		EventStore:   eventRepo,
		ContactStore: contactRepo,
		Notifier:     safetysvc.NewLogNotifier(log),
		Logger:       log,
	}, safetysvc.Config{
		DefaultCheckInFrequencyMinutes: cfg.Safety.DefaultCheckInFrequencyMinutes,
		DefaultPlannedDurationMinutes:  cfg.Safety.DefaultPlannedDurationMinutes,
		MaxPlannedDurationMinutes:      cfg.Safety.MaxPlannedDurationMinutes,
	})

	cleanupJob := cleanup.New(
		sessionRepo,
		eventRepo,
		cfg.Cleanup.EndedSessionRetention,
		cfg.Cleanup.AckedEventRetention,
		log,
	)

	RegisterRoutes(r, Dependencies{
		SwipeService:    swipeService,
		MatchService:    matchesService,
		SafetyService:   safetyService,
		ContactsService: contactsService,
		JWTManager:      jwtManager,
		Logger:          log,
		Config:          cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		cleanupJob: cleanupJob,
		httpRouter: r,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	go a.runCleanupLoop(ctx)

	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) runCleanupLoop(ctx context.Context) {
	interval := a.cfg.Cleanup.Interval
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.cleanupJob.Run(ctx); err != nil {
				a.logger.Warn("cleanup run failed", zap.Error(err))
			}
		}
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
