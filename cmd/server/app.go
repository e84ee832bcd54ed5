package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	adminapp "github.com/medistore/storefront/internal/application/admin"
	cartapp "github.com/medistore/storefront/internal/application/cart"
	catalogapp "github.com/medistore/storefront/internal/application/catalog"
	identityapp "github.com/medistore/storefront/internal/application/identity"
	orderapp "github.com/medistore/storefront/internal/application/order"
	sellerapp "github.com/medistore/storefront/internal/application/seller"
	"github.com/medistore/storefront/internal/domain/cart"
	"github.com/medistore/storefront/internal/domain/shared/valueobject"
	"github.com/medistore/storefront/internal/infrastructure/cache"
	"github.com/medistore/storefront/internal/infrastructure/config"
	"github.com/medistore/storefront/internal/infrastructure/logger"
	"github.com/medistore/storefront/internal/infrastructure/medistore"
	"github.com/medistore/storefront/internal/infrastructure/telemetry"
	"github.com/medistore/storefront/internal/interfaces/http/handler"
	"github.com/medistore/storefront/internal/interfaces/http/middleware"
	"github.com/medistore/storefront/internal/interfaces/http/router"
)

// app is the wired storefront: the engine plus everything that needs closing
type app struct {
	engine  *gin.Engine
	router  *router.Router
	carts   *cartapp.Registry
	store   cache.Store
	limiter *middleware.RateLimiter
	log     *zap.Logger
}

// newApp builds the remote client, the services and the HTTP engine
func newApp(cfg *config.Config, log *zap.Logger, metrics *telemetry.Metrics) (*app, error) {
	client, err := medistore.NewClient(medistore.ClientConfig{
		BaseURL:          cfg.Remote.APIURL,
		AuthURL:          cfg.Remote.AuthURL,
		Timeout:          cfg.Remote.Timeout,
		MaxResponseBytes: cfg.Remote.MaxResponseBytes,
	}, medistore.WithLogger(log), medistore.WithMetrics(metrics))
	if err != nil {
		return nil, err
	}

	a := &app{log: log}

	catalogOpts := []catalogapp.Option{catalogapp.WithLogger(log), catalogapp.WithMetrics(metrics)}
	if cfg.Cache.Enabled {
		store, err := cache.NewStoreFactory(cfg.Cache.Backend, cache.RedisConfig{
			Host:     cfg.Cache.Redis.Host,
			Port:     cfg.Cache.Redis.Port,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		}, cache.WithLogger(log)).CreateStore()
		if err != nil {
			return nil, err
		}
		a.store = store
		catalogOpts = append(catalogOpts, catalogapp.WithCache(store, cfg.Cache.TTL))
	}
	catalogSvc := catalogapp.NewService(client, catalogOpts...)

	pricing := cart.Pricing{
		Currency:    valueobject.Currency(cfg.Cart.Currency),
		ShippingFee: cfg.Cart.ShippingFeeDecimal(),
	}
	notifier := cartapp.NewLogNotifier(log)
	a.carts = cartapp.NewRegistry(func() *cartapp.ViewModel {
		return cartapp.NewViewModel(client,
			cartapp.WithPricing(pricing),
			cartapp.WithNotifier(notifier),
			cartapp.WithLogger(log),
			cartapp.WithMetrics(metrics),
		)
	}, cfg.Cart.IdleTTL, cartapp.WithRegistryLogger(log), cartapp.WithRegistryMetrics(metrics))

	identitySvc := identityapp.NewService(client, log)
	orderSvc := orderapp.NewService(client, a.carts, log)

	handlers := router.Handlers{
		Catalog: handler.NewCatalogHandler(catalogSvc),
		Cart:    handler.NewCartHandler(a.carts, orderSvc),
		Order:   handler.NewOrderHandler(orderSvc),
		Seller:  handler.NewSellerHandler(sellerapp.NewService(client, catalogSvc, log)),
		Admin:   handler.NewAdminHandler(adminapp.NewService(client, log)),
		Account: handler.NewAccountHandler(identitySvc),
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: request id and tracing first so every later log line and
	// error response carries them.
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(metrics))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	security := middleware.DefaultSecurityConfig()
	security.HSTSEnabled = cfg.App.Env == "production"
	engine.Use(middleware.SecureWithConfig(security))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		a.limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(a.limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	health := handler.NewHealthHandler(cfg.App.Name, version)
	engine.GET("/health", health.Health)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	a.router = router.NewRouter(engine, router.WithMiddleware(
		middleware.Credential(),
		middleware.LoadSession(identitySvc),
		middleware.TracingAttributeInjector(),
	))
	a.router.Register(router.StorefrontGroups(handlers)...).Setup()
	a.engine = engine

	return a, nil
}

// start launches background work
func (a *app) start() {
	a.carts.Start()
}

// close releases the app's resources
func (a *app) close() {
	a.carts.Close()
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("Error closing catalog cache", zap.Error(err))
		}
	}
}
