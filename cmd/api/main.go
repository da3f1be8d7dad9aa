package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/http/pprof"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"

	"github.com/slugsera/backend-shop/internal/catalog"
	"github.com/slugsera/backend-shop/internal/common"
	"github.com/slugsera/backend-shop/internal/config"
	"github.com/slugsera/backend-shop/internal/diag"
	"github.com/slugsera/backend-shop/internal/health"
	"github.com/slugsera/backend-shop/internal/obs"
	"github.com/slugsera/backend-shop/internal/order"
	"github.com/slugsera/backend-shop/internal/policy"
	"github.com/slugsera/backend-shop/internal/pricing"
	"github.com/slugsera/backend-shop/internal/ratelimit"
	"github.com/slugsera/backend-shop/internal/repo"
	"github.com/slugsera/backend-shop/internal/security"
	"github.com/slugsera/backend-shop/internal/seed"
	"github.com/slugsera/backend-shop/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "slugsera")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", false)
	if tracingEnabled {
		sampling := envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0)
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "slugsera-shop",
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			Exporter:      envOrDefault("OBS_TRACING_EXPORTER", "otlp"),
			SamplingRatio: sampling,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				ctx := context.Background()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := repo.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}

	pool, err := repo.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}

	// Redis is optional: without it the catalog cache and rate limiter
	// degrade to pass-through.
	var redisClient *redis.Client
	if strings.TrimSpace(cfg.RedisURL) != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse redis url")
		}
		redisClient = redis.NewClient(redisOpts)
		if err := redisotel.InstrumentTracing(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis tracing")
		}
		if metricsEnabled {
			if err := redisotel.InstrumentMetrics(redisClient); err != nil {
				logger.Error().Err(err).Msg("instrument redis metrics")
			}
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("ping redis")
		}
	} else {
		logger.Info().Msg("redis not configured, cache and rate limiting disabled")
	}

	products := repo.NewProductRepository(pool)

	catalogCacheTTL := envDurationMillis("CATALOG_CACHE_TTL_MS", 60_000)
	catalogService, err := catalog.NewService(catalog.ServiceConfig{
		Products: products,
		Cache:    catalog.NewCache(redisClient, catalogCacheTTL),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise catalog service")
	}
	catalogHandler := catalog.NewHandler(catalog.HandlerConfig{Service: catalogService})

	engine := pricing.NewEngine(products, cfg.Pricing())

	orderService, err := order.NewService(order.ServiceConfig{
		Engine: engine,
		Orders: repo.NewOrderRepository(pool),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise order service")
	}
	orderHandler := order.NewHandler(order.HandlerConfig{Service: orderService})

	userService, err := user.NewService(user.ServiceConfig{
		Users: repo.NewUserRepository(pool),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise user service")
	}
	userHandler := user.NewHandler(user.HandlerConfig{Service: userService})

	seedService, err := seed.NewService(seed.ServiceConfig{
		Products: products,
		AfterRun: catalogService.InvalidateListing,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise seed service")
	}
	seedHandler := seed.NewHandler(seedService)

	policyHandler := policy.NewHandler()
	diagHandler := diag.NewHandler(pool)

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(security.Headers{
		Enable:     envBool("SECURE_HEADERS", true),
		EnableHSTS: envBool("SECURE_HSTS", false),
	}.Middleware)
	r.Use(security.BodyLimit{Max: int64(envInt("SECURE_MAX_BODY_BYTES", 1<<20))}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	if envBool("OBS_ENABLE_PPROF", false) {
		pprofUser := envOrDefault("SECURE_PPROF_BASIC_AUTH_USER", "")
		pprofPass := envOrDefault("SECURE_PPROF_BASIC_AUTH_PASS", "")
		r.Mount("/debug/pprof", protectPprof(newPprofMux(), pprofUser, pprofPass))
	}

	healthHandler := health.Handler{
		Checker:      readinessChecker{db: pool, redis: redisClient},
		DBTimeout:    envDurationMillis("HEALTH_READY_DB_TIMEOUT_MS", 500),
		RedisTimeout: envDurationMillis("HEALTH_READY_REDIS_TIMEOUT_MS", 300),
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Get("/", diagHandler.Root)
	r.Get("/test", diagHandler.Test)

	apiLimiter := ratelimit.Handler{
		Limiter: ratelimit.Limiter{Client: redisClient, Prefix: "slugsera:rl:"},
		Config: ratelimit.Config{
			Key:    common.ClientIP,
			Window: envDurationMillis("RATE_LIMIT_WINDOW_MS", 60_000),
			Max:    envInt("RATE_LIMIT_MAX", 120),
		},
		OnError: func(err error) {
			logger.Error().Err(err).Msg("rate limiter")
		},
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(apiLimiter.Middleware)
		api.Get("/products", catalogHandler.Products)
		api.Get("/products/{slug}", catalogHandler.ProductDetail)
		api.Post("/seed", seedHandler.Seed)
		api.Post("/calc", orderHandler.Calc)
		api.Post("/orders", orderHandler.Create)
		api.Post("/users/register", userHandler.Register)
		api.Post("/users/login", userHandler.Login)
		api.Get("/policies", policyHandler.Policies)
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	logger.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

type readinessChecker struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func (c readinessChecker) PingDB(ctx context.Context, timeout time.Duration) error {
	if c.db == nil {
		return errors.New("db not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.db.Ping(ctx)
}

func (c readinessChecker) PingRedis(ctx context.Context, timeout time.Duration) error {
	if c.redis == nil {
		// Absent by configuration, not a failure.
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.redis.Ping(ctx).Err()
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationMillis(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Millisecond
}

func newPprofMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)
	mux.Handle("/allocs", pprof.Handler("allocs"))
	mux.Handle("/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/heap", pprof.Handler("heap"))
	return mux
}

func protectPprof(handler http.Handler, user, pass string) http.Handler {
	user = strings.TrimSpace(user)
	pass = strings.TrimSpace(pass)
	if user == "" {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 || subtle.ConstantTimeCompare([]byte(p), []byte(pass)) != 1 {
			w.Header().Set("WWW-Authenticate", "Basic realm=restricted")
			http.Error(w, "unauthorised", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
