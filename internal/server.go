package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/coachportal/internal/auth"
	"github.com/2beens/coachportal/internal/coaching/exercises"
	coachingmcp "github.com/2beens/coachportal/internal/coaching/mcp"
	"github.com/2beens/coachportal/internal/coaching/programs"
	"github.com/2beens/coachportal/internal/coaching/routines"
	"github.com/2beens/coachportal/internal/coaching/sets"
	"github.com/2beens/coachportal/internal/config"
	"github.com/2beens/coachportal/internal/db"
	"github.com/2beens/coachportal/internal/docstore"
	"github.com/2beens/coachportal/internal/geoip"
	"github.com/2beens/coachportal/internal/middleware"
	"github.com/2beens/coachportal/internal/misc"
	"github.com/2beens/coachportal/internal/objectstore"
	"github.com/2beens/coachportal/internal/profile"
	"github.com/2beens/coachportal/internal/telemetry/metrics"
	"github.com/2beens/coachportal/internal/telemetry/tracing"
	"github.com/2beens/coachportal/internal/userprograms"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string
	mcpEnabled        bool

	config  *config.Config
	dbPool  *pgxpool.Pool
	store   docstore.Store
	objects *objectstore.DiskStore
	geoIp   *geoip.Api

	redisClient  *redis.Client
	rateLimiter  middleware.RequestRateLimiter
	loginChecker auth.Checker
	authService  *auth.Service
	identity     *auth.Identity

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
	stopCleaner    context.CancelFunc
}

type NewServerParams struct {
	Config      *config.Config
	Secrets     *config.Secrets
	VersionInfo string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg, secrets := params.Config, params.Secrets

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBUser:         cfg.PostgresUser,
		DBPassword:     secrets.PostgresPassword,
		DBName:         cfg.PostgresDBName,
		TracingEnabled: secrets.HoneycombEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("portal", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: secrets.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	serviceName := secrets.OtelServiceName
	if serviceName == "" {
		serviceName = "coach-portal"
	}
	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(secrets.HoneycombEnabled, serviceName, rdb)
	if err != nil {
		return nil, err
	}

	psqlStore := docstore.NewPsqlStore(dbPool)
	if err := psqlStore.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure documents schema: %w", err)
	}
	userRepo := auth.NewUserRepo(dbPool)
	if err := userRepo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure users schema: %w", err)
	}

	objects, err := objectstore.NewDiskStore(
		cfg.ObjectStorePath,
		cfg.PublicBaseURL,
		cfg.MaxUploadSizeMB<<20,
	)
	if err != nil {
		return nil, fmt.Errorf("new object store: %w", err)
	}

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	authService := auth.NewAuthService(sessionTTL, secrets.SessionTokenLength, rdb)
	cleanerCtx, stopCleaner := context.WithCancel(context.Background())
	go authService.RunCleaner(cleanerCtx, time.Duration(cfg.SessionCleanHour)*time.Hour)

	var identity *auth.Identity
	if secrets.GoogleClientID != "" {
		identity = auth.NewIdentity(userRepo, authService, auth.NewGoogleVerifier(secrets.GoogleClientID))
	} else {
		log.Infoln("google sign-in disabled, client id not set")
		identity = auth.NewIdentity(userRepo, authService, nil)
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return &Server{
		config:      cfg,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,
		mcpEnabled:  secrets.MCPEnabled,
		store: docstore.NewCachedStore(
			psqlStore,
			cfg.DocCacheSizeMB<<20,
			cfg.DocCacheTTLSecs,
			metricsManager,
		),
		objects: objects,
		geoIp:   geoip.NewApi(secrets.IpInfoToken, tracedHttpClient, rdb),

		redisClient:  rdb,
		rateLimiter:  redis_rate.NewLimiter(rdb),
		authService:  authService,
		identity:     identity,
		loginChecker: auth.NewLoginChecker(sessionTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
		stopCleaner:    stopCleaner,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	profilesRepo := profile.NewRepo(s.store)
	miscHandler := misc.NewHandler(
		s.identity,
		newLoginRecorder(profilesRepo, s.geoIp),
		s.versionInfo,
		s.metricsManager,
	)
	miscHandler.SetupRoutes(r, s.rateLimiter, s.config.LoginRateLimitAllowedPerMin, s.config.AllowedOrigins)

	profileHandler := profile.NewHandler(profilesRepo, s.identity, s.objects, s.objects.MaxSize(), s.metricsManager)
	r.HandleFunc("/profile", profileHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/profile", profileHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-profile")
	r.HandleFunc("/profile/email", profileHandler.HandleUpdateEmail).Methods("PUT", "OPTIONS").Name("update-email")
	r.HandleFunc("/profile/password", profileHandler.HandleUpdatePassword).Methods("PUT", "OPTIONS").Name("update-password")
	r.HandleFunc("/profile/photo", profileHandler.HandleUploadPhoto).Methods("POST", "OPTIONS").Name("upload-profile-photo")

	exercisesRepo := exercises.NewRepo(s.store, s.metricsManager)
	exercisesHandler := exercises.NewHandler(exercisesRepo)
	r.HandleFunc("/exercises/options", exercisesHandler.HandleOptions).Methods("GET", "OPTIONS").Name("exercise-options")
	r.HandleFunc("/exercises", exercisesHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/exercises", exercisesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises/{id}", exercisesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-exercise")

	setsRepo := sets.NewRepo(s.store, s.metricsManager)
	setsHandler := sets.NewHandler(setsRepo, exercisesRepo)
	r.HandleFunc("/sets/options", setsHandler.HandleOptions).Methods("GET", "OPTIONS").Name("set-options")
	r.HandleFunc("/sets", setsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-set")
	r.HandleFunc("/sets", setsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-sets")

	routinesRepo := routines.NewRepo(s.store, s.metricsManager)
	routinesHandler := routines.NewHandler(routinesRepo, setsRepo)
	r.HandleFunc("/routines/options", routinesHandler.HandleOptions).Methods("GET", "OPTIONS").Name("routine-options")
	r.HandleFunc("/routines", routinesHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-routine")
	r.HandleFunc("/routines", routinesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-routines")

	programsRepo := programs.NewRepo(s.store, s.metricsManager)
	programsHandler := programs.NewHandler(programsRepo, routinesRepo)
	r.HandleFunc("/programs/draft", programsHandler.HandleDraft).Methods("POST", "OPTIONS").Name("program-draft")
	r.HandleFunc("/programs/phases/validate", programsHandler.HandleValidatePhase).Methods("POST", "OPTIONS").Name("validate-phase")
	r.HandleFunc("/programs/phases/week", programsHandler.HandleAddWeek).Methods("POST", "OPTIONS").Name("phase-add-week")
	r.HandleFunc("/programs/phases/day", programsHandler.HandleAddDay).Methods("POST", "OPTIONS").Name("phase-add-day")
	r.HandleFunc("/programs/options", programsHandler.HandleOptions).Methods("GET", "OPTIONS").Name("program-options")
	r.HandleFunc("/programs", programsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-program")
	r.HandleFunc("/programs", programsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-programs")
	r.HandleFunc("/programs/{id}", programsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-program")

	userProgramsHandler := userprograms.NewHandler(
		userprograms.NewRepo(s.store, s.metricsManager),
		programsRepo,
		s.objects,
		s.objects.MaxSize(),
		s.metricsManager,
	)
	r.HandleFunc("/user-programs", userProgramsHandler.HandleStart).Methods("POST", "OPTIONS").Name("start-program")
	r.HandleFunc("/active-program", userProgramsHandler.HandleActive).Methods("GET", "OPTIONS").Name("active-program")
	r.HandleFunc("/active-program/today", userProgramsHandler.HandleToday).Methods("GET", "OPTIONS").Name("active-program-today")
	r.HandleFunc("/active-program/measurements", userProgramsHandler.HandleSaveMeasurements).Methods("POST", "OPTIONS").Name("save-measurements")

	filesHandler := objectstore.NewHandler(s.objects)
	r.HandleFunc("/files/{path:.+}", filesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-file")

	if s.mcpEnabled {
		r.PathPrefix("/mcp").Handler(
			coachingmcp.NewHTTPHandler(coachingmcp.NewServer(programsRepo)),
		).Name("mcp")
	}

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

// newLoginRecorder keeps a nil geo api from turning into a non-nil locator.
func newLoginRecorder(profilesRepo *profile.Repo, geo *geoip.Api) *profile.LoginRecorder {
	if geo == nil {
		return profile.NewLoginRecorder(profilesRepo, nil)
	}
	return profile.NewLoginRecorder(profilesRepo, geo)
}

func (s *Server) Serve(host string, port int) {
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

	log.Debugf(" > objects stored under: [%s]", filepath.Clean(s.config.ObjectStorePath))
	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.stopCleaner != nil {
		s.stopCleaner()
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

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
