package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/app"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/config"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/database"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/storage"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/logger"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/metrics"
)

const mongoConnectAttempts = 5

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: env=%s mongo=%v redis=%v storage=%s", cfg.Server.Environment, cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Storage.Driver)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			logger.Infof("connected to Redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	var client *mongo.Client
	repos := app.MemoryRepos()
	if cfg.MongoDB.URI != "" {
		client, err = database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, mongoConnectAttempts)
		if err != nil {
			logger.Fatalf("could not connect to MongoDB: %v", err)
		}
		logger.Infof("connected to MongoDB, database %s", cfg.MongoDB.Database)
		repos = app.MongoRepos(client.Database(cfg.MongoDB.Database))
		if err := repos.EnsureIndexes(ctx); err != nil {
			logger.Warnf("index creation failed: %v", err)
		}
	} else {
		logger.Warnf("MONGODB_URI not set: using in-memory repositories, data will not survive a restart")
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Fatalf("failed to initialize resume storage: %v", err)
	}

	admin, err := app.AdminVerifier(ctx, cfg.Admin)
	if err != nil {
		logger.Fatalf("failed to initialize admin auth: %v", err)
	}
	if admin == nil {
		logger.Warnf("no ADMIN_JWT_SECRET or Keycloak realm configured: admin routes are open")
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	router := app.NewRouter(cfg, app.NewServices(cfg, repos, store, rdb), app.Deps{Mongo: client, Redis: rdb, Admin: admin})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("starting CohortLab API on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("http shutdown: %v", err)
	}
	if client != nil {
		if err := client.Disconnect(shutdownCtx); err != nil {
			logger.Errorf("mongo disconnect: %v", err)
		}
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	logger.Infof("shutdown complete")
}
