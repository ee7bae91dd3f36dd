// Package server runs a service's HTTP handler with Consul registration and
// graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/prudhivi99/Distributed-Systems/minibill-go/internal/discovery"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	Name string
	Port int
	Tags []string
}

// Run serves handler on opts.Port until ctx is done. With a non-nil consul
// client the service is registered for the lifetime of the server.
func Run(ctx context.Context, opts Options, consul *discovery.ConsulClient, handler http.Handler, log *zap.Logger) error {
	l, err := net.Listen("tcp", fmt.Sprintf(":%d", opts.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", opts.Port, err)
	}

	serviceID := fmt.Sprintf("%s-%d", opts.Name, opts.Port)
	if consul != nil {
		err := consul.Register(discovery.ServiceConfig{
			Name: opts.Name,
			ID:   serviceID,
			Port: opts.Port,
			Tags: opts.Tags,
		})
		if err != nil {
			log.Warn("Consul registration failed", zap.Error(err))
		} else {
			defer consul.Deregister(serviceID)
		}
	}

	log.Info("Service starting", zap.String("service", opts.Name), zap.String("addr", l.Addr().String()))
	return serve(ctx, &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}, l, log)
}

func serve(ctx context.Context, srv *http.Server, l net.Listener, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
