package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/gymxp/internal/config"
	"github.com/2beens/gymxp/internal/db"
	"github.com/2beens/gymxp/internal/events"
	"github.com/2beens/gymxp/internal/gamification"
	"github.com/2beens/gymxp/internal/middleware"
	"github.com/2beens/gymxp/internal/misc"
	"github.com/2beens/gymxp/internal/telemetry/metrics"
	"github.com/2beens/gymxp/internal/telemetry/tracing"
	"github.com/2beens/gymxp/internal/workout"
	"github.com/2beens/gymxp/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	appSecret         string // sent by the gymxp ios app with every request
	adminSecretHash   string
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	profiles       *gamification.Service
	eventsService  *events.Service
	sessionManager *workout.Manager
	janitorCancel  context.CancelFunc
	janitorDone    chan struct{}

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	Secrets                 *config.Secrets
	VersionInfo             string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbParams := db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.Secrets.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	}

	if params.Config.RunMigrations {
		if err := db.MigrateUp(dbParams); err != nil {
			return nil, fmt.Errorf("migrate db: %w", err)
		}
	}

	dbPool, err := db.NewDBPool(ctx, dbParams)
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("gymxp", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.Secrets.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, params.Secrets.OtelServiceName, rdb)
	if err != nil {
		return nil, err
	}

	profiles, err := gamification.NewService(gamification.NewServiceParams{
		Repo:           gamification.NewRepo(dbPool),
		Leaderboard:    gamification.NewLeaderboard(rdb),
		Rules:          params.Config.XP,
		CacheSizeMB:    params.Config.ProfileCacheSizeMB,
		CacheTTL:       params.Config.ProfileCacheTTL,
		MetricsManager: metricsManager,
	})
	if err != nil {
		return nil, fmt.Errorf("new gamification service: %w", err)
	}

	eventsService := events.NewService(events.NewRepo(dbPool))

	sessionManager, err := workout.NewManager(workout.NewManagerParams{
		Profiles:          profiles,
		Events:            eventsService,
		Repo:              workout.NewRepo(dbPool),
		Snapshots:         workout.NewSnapshotStore(rdb, params.Config.SnapshotTTL),
		CounterConfig:     params.Config.Counter,
		IdleTimeout:       params.Config.SessionIdleTimeout,
		MaxFramesPerBatch: params.Config.MaxFramesPerBatch,
		MetricsManager:    metricsManager,
	})
	if err != nil {
		return nil, fmt.Errorf("new workout manager: %w", err)
	}

	return &Server{
		config:          params.Config,
		dbPool:          dbPool,
		redisClient:     rdb,
		appSecret:       params.Secrets.AppSecret,
		adminSecretHash: params.Secrets.AdminSecretHash,
		versionInfo:     params.VersionInfo,

		profiles:       profiles,
		eventsService:  eventsService,
		sessionManager: sessionManager,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	miscHandler := misc.NewHandler(
		s.versionInfo,
		map[string]misc.HealthCheck{
			"postgres": s.dbPool.Ping,
			"redis": func(ctx context.Context) error {
				return s.redisClient.Ping(ctx).Err()
			},
		},
		s.config.Counter,
		s.config.XP,
	)
	miscHandler.SetupRoutes(r)

	gamification.NewHandler(s.profiles).SetupRoutes(r)

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	workout.NewHandler(s.sessionManager).SetupRoutes(
		r,
		reqRateLimiter,
		s.config.FramesRateLimitPerMin,
		s.metricsManager,
	)

	events.NewHandler(s.eventsService).SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteResponse(w, pkg.ContentType.Text, "404 page not found", http.StatusNotFound)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(
		s.appSecret,
		s.adminSecretHash,
	)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	janitorCtx, janitorCancel := context.WithCancel(ctx)
	s.janitorCancel = janitorCancel
	s.janitorDone = make(chan struct{})
	go func() {
		defer close(s.janitorDone)
		s.sessionManager.RunJanitor(janitorCtx, s.config.JanitorInterval)
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.janitorCancel != nil {
		s.janitorCancel()
		<-s.janitorDone
	}

	// live sessions would be lost otherwise, credit them before the stores go away
	if n := s.sessionManager.ExpireIdle(ctx, time.Now().Add(s.config.SessionIdleTimeout+time.Second)); n > 0 {
		log.Infof("ended %d live session(s) on shutdown", n)
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
