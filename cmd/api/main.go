package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quickdash/storefront/internal/cart"
	"github.com/quickdash/storefront/internal/catalog"
	"github.com/quickdash/storefront/internal/config"
	"github.com/quickdash/storefront/internal/events"
	"github.com/quickdash/storefront/internal/health"
	"github.com/quickdash/storefront/internal/obs"
	"github.com/quickdash/storefront/internal/order"
	"github.com/quickdash/storefront/internal/prefs"
	"github.com/quickdash/storefront/internal/profile"
	"github.com/quickdash/storefront/internal/promo"
	"github.com/quickdash/storefront/internal/ratelimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, nil)

	tracingEnabled := cfg.TracingEnabled
	if tracingEnabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "storefront-api",
			Endpoint:      cfg.TracingEndpoint,
			SamplingRatio: cfg.TracingSampling,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	provider, err := catalog.NewStaticProvider()
	if err != nil {
		logger.Fatal().Err(err).Msg("load catalog")
	}
	catalogHandler := &catalog.Handler{Provider: provider, FallbackSize: cfg.CatalogFallbackSize}

	bus := &events.Bus{Notifiers: []events.Notifier{
		events.LogNotifier{Logger: logger},
	}}

	cartSvc := cart.NewService(promo.BaseRules(), cfg.DeliveryFee, cfg.StockLimitDefault)
	cartHandler := &cart.Handler{Svc: cartSvc, Catalog: provider, Events: bus}

	orderStore := order.NewStore()
	orderSvc := order.NewService(cartSvc, orderStore, bus)
	orderSvc.Log = logger
	orderHandler := &order.Handler{Svc: orderSvc}

	profileHandler := &profile.Handler{Orders: orderStore}

	prefsSvc, err := prefs.NewService(&prefs.MemoryStore{}, prefs.Theme(cfg.ThemeDefault))
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise preferences")
	}
	prefsHandler := &prefs.Handler{Svc: prefsSvc}

	promoLimit := ratelimit.Handler{
		Limiter: ratelimit.NewMemoryLimiter(),
		Config: ratelimit.Config{
			Key:    func(r *http.Request) string { return chi.URLParam(r, "id") },
			Window: cfg.PromoRateWindow,
			Max:    cfg.PromoRateLimit,
		},
		OnError: func(err error) {
			logger.Error().Err(err).Msg("promo rate limiter")
		},
	}

	var httpMetrics *obs.HTTPMetrics
	if cfg.MetricsEnabled {
		buckets := obs.BucketsFromCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(cfg.MetricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if cfg.MetricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	healthHandler := health.Handler{
		Checker:        readinessChecker{catalog: provider},
		CatalogTimeout: 200 * time.Millisecond,
	}
	r.Get("/healthz", healthHandler.Live)
	r.Get("/readyz", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Get("/categories", catalogHandler.Categories)
		v.Get("/products", catalogHandler.List)
		v.Get("/products/{slug}", catalogHandler.Detail)

		v.Route("/carts", func(c chi.Router) {
			c.Post("/", cartHandler.Create)
			c.Get("/{id}", cartHandler.Get)
			c.Post("/{id}/items", cartHandler.AddItem)
			c.Patch("/{id}/items/{itemId}", cartHandler.UpdateQuantity)
			c.Delete("/{id}/items/{itemId}", cartHandler.RemoveItem)
			c.Delete("/{id}/items", cartHandler.Clear)
			c.With(promoLimit.Middleware).Post("/{id}/promo", cartHandler.ApplyPromo)
			c.Delete("/{id}/promo", cartHandler.RemovePromo)
		})

		v.Post("/checkout", orderHandler.Checkout)

		v.Route("/orders", func(o chi.Router) {
			o.Get("/", orderHandler.List)
			o.Get("/{id}", orderHandler.Get)
			o.Post("/{id}/advance", orderHandler.Advance)
		})

		v.Get("/profile", profileHandler.Get)

		v.Route("/preferences/theme", func(p chi.Router) {
			p.Get("/", prefsHandler.Get)
			p.Put("/", prefsHandler.Put)
		})
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
	catalog *catalog.StaticProvider
}

func (c readinessChecker) PingCatalog(ctx context.Context, timeout time.Duration) error {
	if c.catalog == nil {
		return errors.New("catalog not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(c.catalog.Products()) == 0 {
		return errors.New("catalog empty")
	}
	return nil
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
