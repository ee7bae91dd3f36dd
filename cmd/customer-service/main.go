package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/config"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/consumer"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/db"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/discovery"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/handlers"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/logger"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/messaging"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/server"
)

const serviceName = "customer-service"

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
		log.Fatal("customer-service stopped", zap.Error(err))
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

	customerRepo := db.NewCustomerRepository(database)
	if cfg.App.Seed {
		n, err := customerRepo.SeedIfEmpty(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Info("Seeded customers", zap.Int("count", n))
		}
	}

	// Connect to RabbitMQ and join the notification group
	rabbitMQ, err := messaging.NewRabbitMQ(cfg.RabbitMQ.URL(), log)
	if err != nil {
		return err
	}
	defer rabbitMQ.Close()

	if err := rabbitMQ.DeclareTopic(cfg.RabbitMQ.Exchange); err != nil {
		return err
	}
	deliveries, err := rabbitMQ.ConsumeGroup(ctx, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.ConsumerGroup,
		cfg.RabbitMQ.Partitions, cfg.RabbitMQ.Prefetch)
	if err != nil {
		return err
	}
	notifications := consumer.NewNotificationConsumer(log)
	go consumer.Run(ctx, deliveries, notifications.Handle, log.Named("notification"))

	// Setup router
	router := mux.NewRouter()
	router.Use(logger.HTTPMiddleware(log))
	handlers.NewCustomerHandler(customerRepo).Routes(router)

	consul := discovery.Optional(cfg.Consul.Enabled, cfg.Consul.Host, cfg.Consul.Port, log)
	return server.Run(ctx, server.Options{Name: cfg.App.Name, Port: cfg.App.Port, Tags: []string{"api", "customers"}}, consul, router, log)
}
