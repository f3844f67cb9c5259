package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/BloggingApp/feed-service/internal/cache"
	"github.com/BloggingApp/feed-service/internal/config"
	"github.com/BloggingApp/feed-service/internal/events"
	"github.com/BloggingApp/feed-service/internal/handler"
	"github.com/BloggingApp/feed-service/internal/media"
	"github.com/BloggingApp/feed-service/internal/metrics"
	"github.com/BloggingApp/feed-service/internal/repository"
	"github.com/BloggingApp/feed-service/internal/repository/memory"
	"github.com/BloggingApp/feed-service/internal/repository/postgres"
	"github.com/BloggingApp/feed-service/internal/repository/redisrepo"
	"github.com/BloggingApp/feed-service/internal/server"
	"github.com/BloggingApp/feed-service/internal/service"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := loadEnv(); err != nil {
		logger.Warn("no .env file loaded, using process environment", zap.Error(err))
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	repos, closeRepos := initRepository(ctx, logger)
	defer closeRepos()

	listing := initListing(ctx, logger, appMetrics)

	publisher := events.NewPublisher(config.KafkaConfig{
		Brokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		PostsTopic: viper.GetString("kafka.posts-topic"),
	})
	defer publisher.Close()

	deps := service.Deps{
		Logger:   logger,
		Repo:     repos,
		Listing:  listing,
		Events:   publisher,
		Metrics:  appMetrics,
		PageSize: viper.GetInt("app.page-size"),
	}
	if storage := initMedia(ctx, logger); storage != nil {
		deps.Media = storage
	}

	services := service.New(deps)
	handlers := handler.New(logger, services, appMetrics, handler.Config{
		Auth: config.AuthConfig{
			AccessSecret: os.Getenv("ACCESS_SECRET"),
			LoginURL:     viper.GetString("auth.login-url"),
		},
		ClientOrigin: viper.GetString("client.origin"),
		Gatherer:     registry,
	})

	srv := server.New()
	serverConfig := config.ServerConfig{
		Port:           viper.GetString("app.port"),
		Handler:        handlers.InitRoutes(),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    time.Second * 10,
		WriteTimeout:   time.Second * 10,
	}
	go func() {
		if err := srv.Run(serverConfig); err != nil {
			logger.Sugar().Panicf("failed to run http server: %s", err.Error())
		}
	}()

	logger.Info("Server started", zap.String("port", serverConfig.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shut down http server: %s", err.Error())
	}
}

func initRepository(ctx context.Context, logger *zap.Logger) (*repository.Repository, func()) {
	switch storage := viper.GetString("app.storage"); storage {
	case "", "memory":
		logger.Info("Using in-memory entity store")
		return memory.New(), func() {}
	case "postgres":
		dbConfig := config.DBConfig{
			Username: os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			DBName:   os.Getenv("POSTGRES_DATABASE"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
			MaxConns: viper.GetInt32("postgres.max-conns"),
		}
		db, err := postgres.DB(ctx, dbConfig)
		if err != nil {
			logger.Sugar().Panicf("failed to connect to postgres: %s", err.Error())
		}
		if err := db.Ping(ctx); err != nil {
			logger.Sugar().Panicf("failed to ping postgres: %s", err.Error())
		}
		logger.Info("Successfully connected to PostgreSQL")

		if err := postgres.Migrate(ctx, db); err != nil {
			logger.Sugar().Panicf("failed to migrate postgres schema: %s", err.Error())
		}

		return postgres.New(db), db.Close
	default:
		logger.Sugar().Panicf("unknown storage mode: %s", storage)
		return nil, nil
	}
}

func initListing(ctx context.Context, logger *zap.Logger, appMetrics *metrics.Metrics) *cache.Listing {
	cacheConfig := config.CacheConfig{
		Backend:    viper.GetString("cache.backend"),
		ListingTTL: viper.GetDuration("cache.listing-ttl"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
	}
	if cacheConfig.ListingTTL <= 0 {
		cacheConfig.ListingTTL = 20 * time.Second
	}

	var store cache.Store
	switch cacheConfig.Backend {
	case "", "memory":
		store = cache.NewMemoryStore(time.Now)
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cacheConfig.RedisAddr})
		pong, err := rdb.Ping(ctx).Result()
		if err != nil {
			logger.Sugar().Panicf("failed to ping redis: %s", err.Error())
		}
		logger.Sugar().Infof("Successfully connected to Redis: %s", pong)

		store = cache.NewRedisStore(redisrepo.NewDefault(rdb), cache.GlobalListing)
	default:
		logger.Sugar().Panicf("unknown cache backend: %s", cacheConfig.Backend)
	}

	return cache.NewListing(cache.GlobalListing, store, cacheConfig.ListingTTL,
		cache.WithLogger(logger),
		cache.WithMetrics(appMetrics),
	)
}

// initMedia returns nil when no object storage is configured.
func initMedia(ctx context.Context, logger *zap.Logger) *media.Storage {
	mediaConfig := config.MediaConfig{
		Endpoint:  os.Getenv("MINIO_ENDPOINT"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		Bucket:    viper.GetString("media.bucket"),
	}
	if !mediaConfig.Enabled() {
		logger.Info("Media storage is not configured, image uploads are disabled")
		return nil
	}

	storage, err := media.New(mediaConfig)
	if err != nil {
		logger.Sugar().Panicf("failed to create minio client: %s", err.Error())
	}
	if err := storage.EnsureBucket(ctx); err != nil {
		logger.Sugar().Panicf("failed to ensure media bucket(%s): %s", mediaConfig.Bucket, err.Error())
	}
	logger.Info("Successfully connected to MinIO")

	return storage
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func loadEnv() error {
	return godotenv.Load()
}

func initConfig() error {
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}
