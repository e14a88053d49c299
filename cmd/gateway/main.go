package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/weiawesome/wes-storefront-gateway/internal/ai"
	"github.com/weiawesome/wes-storefront-gateway/internal/cache"
	"github.com/weiawesome/wes-storefront-gateway/internal/config"
	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
	"github.com/weiawesome/wes-storefront-gateway/internal/handler"
	"github.com/weiawesome/wes-storefront-gateway/internal/notify"
	"github.com/weiawesome/wes-storefront-gateway/internal/ratelimit"
	"github.com/weiawesome/wes-storefront-gateway/internal/repository"
	"github.com/weiawesome/wes-storefront-gateway/internal/service"
	"github.com/weiawesome/wes-storefront-gateway/internal/shopify"
	"github.com/weiawesome/wes-storefront-gateway/pkg/clock"
	"github.com/weiawesome/wes-storefront-gateway/pkg/database"
	pkglog "github.com/weiawesome/wes-storefront-gateway/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty || cfg.Log.Level == "debug",
		ServiceName: pkglog.DefaultServiceName,
	})
	logger := pkglog.L()
	ctx := context.Background()
	clk := clock.RealClock{}

	// Initialize commerce platform client
	shop, err := shopify.NewClient(cfg.Shopify)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create shopify client")
	}

	// Initialize generative AI client
	gemini, err := ai.NewGeminiClient(ctx, cfg.Gemini)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create gemini client")
	}
	resolver := ai.NewMatchResolver(gemini, cfg.Resolver)

	// Initialize database
	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.AutoMigrate(&domain.CustomerModel{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("database connected")

	// Initialize Redis, only needed by the redis rate limit driver
	var redisClient *redis.Client
	if cfg.RateLimit.Driver == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	}

	limiter, err := ratelimit.New(cfg.RateLimit, redisClient, clk)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create rate limiter")
	}

	// Initialize mailer
	mailer, err := notify.NewMailer(cfg.Mail)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create mailer")
	}
	notifier := notify.NewAdminNotifier(mailer, cfg.Mail.From, cfg.Mail.AdminEmail)

	// Initialize caches
	productCache := cache.NewMemoryProductCache()
	searchCache := cache.NewMemorySearchCache(cfg.Search.MaxEntries, cfg.Search.EvictBatch)

	// Initialize services
	fetcher := service.NewCatalogFetcher(shop, productCache, clk, service.CatalogConfig{
		TTL:      cfg.Search.CatalogTTL,
		PageSize: cfg.Search.PageSize,
	})
	searchService := service.NewSearchService(fetcher, resolver, searchCache, clk, cfg.Search.ResultTTL)
	favoriteService := service.NewFavoriteService(shop, fetcher, clk)
	customerService := service.NewCustomerService(repository.NewGormCustomerRepository(db), favoriteService, notifier)
	metafieldService := service.NewMetafieldService(shop)

	// Initialize HTTP handler
	httpHandler := handler.NewHandler(
		searchService,
		customerService,
		metafieldService,
		favoriteService,
		ratelimit.Middleware(limiter, ratelimit.ClientIP),
	)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Register routes
	httpHandler.RegisterRoutes(r)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("storefront-gateway starting")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
