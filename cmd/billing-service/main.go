package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/billing"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/client"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/config"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/consumer"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/db"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/discovery"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/handlers"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/logger"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/messaging"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/publisher"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/server"
)

const serviceName = "billing-service"

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
		log.Fatal("billing-service stopped", zap.Error(err))
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

	// Connect to Redis, used for the high-value signal stream
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// Connect to RabbitMQ
	rabbitMQ, err := messaging.NewRabbitMQ(cfg.RabbitMQ.URL(), log)
	if err != nil {
		return err
	}
	defer rabbitMQ.Close()

	billPublisher, err := publisher.NewBillPublisher(rabbitMQ, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Partitions,
		cfg.RabbitMQ.PublishTimeout, log)
	if err != nil {
		return err
	}

	// Locate the directories through Consul when available
	consul := discovery.Optional(cfg.Consul.Enabled, cfg.Consul.Host, cfg.Consul.Port, log)
	httpClient := &http.Client{Timeout: 10 * time.Second}
	customers := client.NewCustomerClient(consul.ResolveURL("customer-service", cfg.Services.CustomerURL), httpClient)
	products := client.NewProductClient(consul.ResolveURL("inventory-service", cfg.Services.InventoryURL), httpClient)

	service := billing.NewService(customers, products, db.NewBillRepository(database), billPublisher, log,
		billing.WithLookupTimeout(cfg.Directory.LookupTimeout))

	// Stream filter: high-value bills go to the log and to a Redis stream
	filter := consumer.NewHighValueFilter(log,
		consumer.NewLogSink(log),
		consumer.NewRedisStreamSink(redisClient, cfg.Redis.Stream),
	)
	deliveries, err := rabbitMQ.ConsumeGroup(ctx, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.ConsumerGroup,
		cfg.RabbitMQ.Partitions, cfg.RabbitMQ.Prefetch)
	if err != nil {
		return err
	}
	go consumer.Run(ctx, deliveries, filter.Handle, log.Named("stream-filter"))

	// Setup router
	billHandler := handlers.NewBillHandler(service)

	router := gin.New()
	router.Use(logger.RequestID(), logger.GinMiddleware(log), logger.Recovery(log))

	router.GET("/health", handlers.Health(serviceName))
	router.GET("/bills", billHandler.ListBills)
	router.GET("/bills/:id", billHandler.GetBill)
	router.GET("/bills/:id/items", billHandler.GetBillItems)
	router.POST("/bills/generate-all", billHandler.GenerateAll)
	router.POST("/bills/customer/:customerId", billHandler.CreateBill)

	return server.Run(ctx, server.Options{Name: cfg.App.Name, Port: cfg.App.Port, Tags: []string{"api", "bills"}}, consul, router, log)
}

