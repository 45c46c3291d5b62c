package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/riskibarqy/tournament-hub/internal/config"
	"github.com/riskibarqy/tournament-hub/internal/infrastructure/account/authjwt"
	"github.com/riskibarqy/tournament-hub/internal/infrastructure/eventbus"
	"github.com/riskibarqy/tournament-hub/internal/infrastructure/objectstore"
	"github.com/riskibarqy/tournament-hub/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tournament-hub/internal/interfaces/httpapi"
	"github.com/riskibarqy/tournament-hub/internal/observability"
	idgen "github.com/riskibarqy/tournament-hub/internal/platform/id"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
	"github.com/riskibarqy/tournament-hub/internal/platform/resilience"
	"github.com/riskibarqy/tournament-hub/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	dbPingTimeout   = 5 * time.Second
	dbMaxOpenConns  = 20
	dbMaxIdleConns  = 5
	dbConnMaxIdle   = 5 * time.Minute
	busStartTimeout = 5 * time.Second
)

// App is the assembled API process: HTTP server, event bus and store handle.
type App struct {
	server *http.Server
	bus    *eventbus.Bus
	db     *sqlx.DB
	logger *logging.Logger
}

// New wires repositories, services and transport from cfg. metrics may be nil.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger, metrics *observability.Metrics) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var (
		qualMetrics    usecase.QualificationMetrics
		requestMetrics httpapi.RequestMetrics
		metricsHandler http.Handler
		registry       prometheus.Registerer
	)
	if metrics != nil {
		qualMetrics = metrics
		requestMetrics = metrics
		metricsHandler = metrics.Handler()
		registry = metrics.Registry()
	}

	a := &App{logger: logger}

	var repos repositories
	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.db = db
		if cfg.DBBootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				a.closeDB()
				return nil, fmt.Errorf("bootstrap seed: %w", err)
			}
		}
		repos = postgresRepositories(db)
		logger.Info("store ready", "backend", cfg.StoreBackend, "db", dbNameFromURL(cfg.DBURL))
	default:
		repos = memoryRepositories()
		logger.Info("store ready", "backend", config.StoreMemory)
	}
	if cfg.CacheEnabled {
		repos = repos.cached(cfg.CacheTTL)
	}

	screenshots, avatars, err := fileStores(ctx, cfg, logger)
	if err != nil {
		a.closeDB()
		return nil, err
	}

	busRetries := cfg.RecomputeMaxRetries
	if busRetries == 0 {
		busRetries = -1
	}
	bus, err := eventbus.New(eventbus.Config{MaxRetries: busRetries, Registry: registry}, logger)
	if err != nil {
		a.closeDB()
		return nil, fmt.Errorf("build event bus: %w", err)
	}
	a.bus = bus

	verifier, err := authjwt.NewVerifier(authjwt.Config{
		Secret:   cfg.AuthJWTSecret,
		Audience: cfg.AuthJWTAudience,
		Issuer:   cfg.AuthJWTIssuer,
		Logger:   logger,
	})
	if err != nil {
		a.closeDB()
		return nil, fmt.Errorf("build token verifier: %w", err)
	}

	ids := idgen.NewUUIDGenerator()
	tournamentSvc := usecase.NewTournamentService(repos.tournaments, ids, logger)
	teamSvc := usecase.NewTeamService(repos.tournaments, repos.teams, ids, logger)
	groupSvc := usecase.NewGroupService(repos.tournaments, repos.groups, repos.standings, repos.teams, cfg.QualificationTieBreak, ids, logger)
	standingSvc := usecase.NewStandingService(repos.groups, repos.standings, bus, cfg.QualificationTieBreak, logger)
	qualificationSvc := usecase.NewQualificationService(
		repos.tournaments,
		repos.groups,
		repos.standings,
		repos.teams,
		usecase.QualificationConfig{
			TieBreak:       cfg.QualificationTieBreak,
			DefaultAdvance: cfg.QualificationDefaultAdvance,
			Workers:        cfg.RecomputeWorkers,
		},
		qualMetrics,
		logger,
	)
	matchSvc := usecase.NewMatchService(repos.tournaments, repos.matches, repos.teams, ids, logger)
	paymentSvc := usecase.NewPaymentService(repos.payments, repos.teams, repos.profiles, screenshots, cfg.StorageSignedURLTTL, ids, logger)
	profileSvc := usecase.NewProfileService(repos.profiles, avatars, ids, logger)
	joinRequestSvc := usecase.NewJoinRequestService(repos.teams, repos.joinRequests, ids, logger)

	bus.OnStandingUpdated(qualificationSvc.HandleStandingUpdated)

	if err := profileSvc.GrantAdmins(ctx, cfg.AuthBootstrapAdmins); err != nil {
		a.closeDB()
		return nil, err
	}

	handler := httpapi.NewHandler(
		tournamentSvc,
		teamSvc,
		groupSvc,
		standingSvc,
		qualificationSvc,
		matchSvc,
		paymentSvc,
		profileSvc,
		joinRequestSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, profileSvc, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MetricsHandler:     metricsHandler,
		Metrics:            requestMetrics,
	})

	a.server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run starts the event consumer, then serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	busErr := make(chan error, 1)
	go func() {
		busErr <- a.bus.Run(ctx)
	}()

	select {
	case <-a.bus.Running():
	case err := <-busErr:
		return fmt.Errorf("event bus stopped before start: %w", err)
	case <-time.After(busStartTimeout):
		return fmt.Errorf("event bus did not start within %s", busStartTimeout)
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	}
}

// Shutdown drains HTTP first so no new standing events are published, then
// stops the bus and closes the store.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	} else {
		a.logger.Info("http server stopped")
	}
	if err := a.bus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close event bus: %w", err))
	}
	if err := a.closeDB(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeDB() error {
	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	a.db = nil
	return nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxIdleTime(dbConnMaxIdle)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// fileStores returns nil interfaces when storage is disabled so the services
// report the dependency as unavailable.
func fileStores(ctx context.Context, cfg config.Config, logger *logging.Logger) (usecase.FileStore, usecase.FileStore, error) {
	if !cfg.StorageEnabled {
		logger.Info("object storage disabled", "reason", "STORAGE_ENABLED=false")
		return nil, nil, nil
	}

	client, err := objectstore.NewClient(ctx, objectstore.ClientConfig{
		Endpoint:        cfg.StorageEndpoint,
		Region:          cfg.StorageRegion,
		AccessKeyID:     cfg.StorageAccessKeyID,
		SecretAccessKey: cfg.StorageSecretAccessKey,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build object store client: %w", err)
	}

	breaker := objectstore.NewBreaker(resilience.CircuitBreakerConfig{
		Enabled:          cfg.StorageCircuitEnabled,
		FailureThreshold: cfg.StorageCircuitFailureCount,
		OpenTimeout:      cfg.StorageCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.StorageCircuitHalfOpenMaxReq,
	}, logger)

	screenshots := objectstore.NewBucket(client, objectstore.BucketConfig{
		Name:    cfg.StoragePrivateBucket,
		Breaker: breaker,
		Logger:  logger,
	})
	avatars := objectstore.NewBucket(client, objectstore.BucketConfig{
		Name:          cfg.StoragePublicBucket,
		PublicBaseURL: cfg.StoragePublicBaseURL,
		Breaker:       breaker,
		Logger:        logger,
	})
	logger.Info("object storage enabled",
		"private_bucket", cfg.StoragePrivateBucket,
		"public_bucket", cfg.StoragePublicBucket,
	)
	return screenshots, avatars, nil
}
