package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/omnimind-research/omnimind/config"
	"github.com/omnimind-research/omnimind/internal/runtime"
	"github.com/omnimind-research/omnimind/internal/search"
	"github.com/omnimind-research/omnimind/internal/search/academic"
	"github.com/omnimind-research/omnimind/internal/search/newsapi"
	"github.com/omnimind-research/omnimind/internal/search/websearch"
	"github.com/omnimind-research/omnimind/internal/store"
	"github.com/omnimind-research/omnimind/internal/trends"
	"github.com/omnimind-research/omnimind/internal/vault"
)

const version = "0.1.0"

// Run wires dependencies and serves the API until the process exits.
func Run(cfg *config.Config) error {
	e := newEcho(cfg)

	ctx := context.Background()
	st, err := store.New(ctx, cfg.Databases.Postgres)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}

	secret := cfg.Server.JWTSecret
	if secret == "" {
		secret = cfg.General.JWTSecret
	}
	if secret == "" {
		return fmt.Errorf("jwt secret not configured (server.jwt_secret or general.jwt_secret)")
	}

	cipher, err := vault.New(cfg.Vault.EncryptionKey)
	if err != nil {
		return fmt.Errorf("initialising vault cipher: %w", err)
	}

	// Provider registry: news is live once its key is set; web and
	// academic degrade to empty until theirs are.
	news := newsapi.New(cfg.Sources.NewsAPI)
	registry := search.NewRegistry(
		news,
		websearch.New(cfg.Sources.WebSearch),
		academic.New(cfg.Sources.Academic),
	)
	agg := search.NewAggregator(registry)

	// Redis is optional; without it the trending feed fetches directly.
	var rdb *redis.Client
	if cfg.Databases.Redis.Enabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Databases.Redis.Addr(),
			Password: cfg.Databases.Redis.Pass,
			DB:       cfg.Databases.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection failed (%s): %w", cfg.Databases.Redis.Addr(), err)
		}
	} else {
		log.Printf("redis not configured; trending cache disabled")
	}
	trendCache := trends.NewCache(rdb, news, cfg.Trending.TTL)
	if rdb != nil {
		refresher := trends.NewRefresher(trendCache, rdb, cfg.Trending.Schedule, cfg.Trending.Regions, cfg.Trending.Limit)
		refresher.Start()
		defer close(refresher.Stop)
	}

	registerRoutes(e, st, cipher, agg, registry, trendCache, []byte(secret))

	addr := cfg.Server.Listen
	if addr == "" {
		addr = ":8000"
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}

// newEcho builds the echo instance with the shared middleware stack.
func newEcho(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, HTTPError{Error: msg})
		}
	}

	origins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	if cfg.Server.FrontendURL != "" {
		origins = append([]string{cfg.Server.FrontendURL}, origins...)
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Cookie"},
		AllowCredentials: true,
	}))
	return e
}

// registerRoutes attaches every handler to the echo instance.
func registerRoutes(e *echo.Echo, st *store.Store, cipher *vault.Cipher,
	agg *search.Aggregator, registry *search.Registry, trendCache *trends.Cache, secret []byte) {

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message":  "OmniMind Backend Online",
			"platform": "AI-Powered Research Platform",
			"status":   "running",
			"version":  version,
		})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	authMW := runtime.EchoAuthMiddleware(secret)

	api := e.Group("/api")

	auth := &AuthHandler{Store: st, Secret: secret}
	auth.Register(api.Group("/auth"))

	sh := &SearchHandler{Agg: agg, Registry: registry}
	sh.Register(api.Group("/search"))

	ah := &AnalysisHandler{}
	ah.Register(api)

	vh := &VaultHandler{Store: st, Cipher: cipher}
	vh.Register(api.Group("/vault", authMW))

	ph := &ProjectsHandler{Store: st}
	ph.Register(api.Group("/projects", authMW))

	nh := &NewsHandler{Trends: trendCache, Store: st, Agg: agg}
	nh.Register(api, authMW)

	pr := &PredictHandler{}
	pr.Register(api)
}
