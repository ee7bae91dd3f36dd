package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/config"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/discovery"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/gateway"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/logger"
	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/server"
)

const serviceName = "api-gateway"

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consul := discovery.Optional(cfg.Consul.Enabled, cfg.Consul.Host, cfg.Consul.Port, log)

	gw := gateway.New(consul, map[string]string{
		"customer-service":  cfg.Services.CustomerURL,
		"inventory-service": cfg.Services.InventoryURL,
		"billing-service":   cfg.Services.BillingURL,
	}, log)
	go gw.Watch(ctx, 10*time.Second)

	router := gin.New()
	router.Use(logger.RequestID(), logger.GinMiddleware(log), logger.Recovery(log))

	router.GET("/health", gw.HealthCheck)
	router.GET("/services", gw.ListServices)
	gw.Register(router, "/api/customers", "customer-service")
	gw.Register(router, "/api/products", "inventory-service")
	gw.Register(router, "/bills", "billing-service")

	// The gateway itself is not registered: it is the entry point.
	if err := server.Run(ctx, server.Options{Name: cfg.App.Name, Port: cfg.App.Port}, nil, router, log); err != nil {
		log.Fatal("api-gateway stopped", zap.Error(err))
	}
}
