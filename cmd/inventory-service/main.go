package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/cache"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/config"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/db"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/discovery"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/handlers"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/logger"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/server"
)

const serviceName = "inventory-service"

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("inventory-service stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL
	database, err := db.NewPostgresDB(ctx, cfg.Database.DSN(), log)
	if err != nil {
		return err
	}
	defer database.Close()

	if cfg.Database.Migrate {
		if err := db.Migrate(database, log); err != nil {
			return err
		}
	}

	productRepo := db.NewProductRepository(database)
	if cfg.App.Seed {
		n, err := productRepo.SeedIfEmpty(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Info("Seeded products", zap.Int("count", n))
		}
	}

	// Connect to Redis
	redisCache, err := cache.NewRedisCache(ctx, &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cfg.Redis.CacheTTL, log)
	if err != nil {
		return err
	}
	defer redisCache.Close()

	productHandler := handlers.NewProductHandler(db.NewCachedProductRepository(productRepo, redisCache, log))

	// Setup router
	router := gin.New()
	router.Use(logger.RequestID(), logger.GinMiddleware(log), logger.Recovery(log))

	router.GET("/health", handlers.Health(serviceName))
	router.GET("/api/products", productHandler.ListProducts)
	router.GET("/api/products/:id", productHandler.GetProduct)
	router.POST("/api/products", productHandler.CreateProduct)
	router.DELETE("/api/products/:id", productHandler.DeleteProduct)

	consul := discovery.Optional(cfg.Consul.Enabled, cfg.Consul.Host, cfg.Consul.Port, log)
	return server.Run(ctx, server.Options{Name: cfg.App.Name, Port: cfg.App.Port, Tags: []string{"api", "products"}}, consul, router, log)
}
