// Package gateway routes public requests to the backend services, locating
// them through Consul with static fallbacks.
package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Resolver is implemented by *discovery.ConsulClient, including a nil one.
type Resolver interface {
	ResolveURL(serviceName, fallback string) string
}

type Gateway struct {
	resolver  Resolver
	fallbacks map[string]string
	client    *http.Client
	log       *zap.Logger

	mutex    sync.RWMutex
	proxies  map[string]*httputil.ReverseProxy
	services map[string]string
}

// New builds a gateway for the given service name → fallback URL table and
// resolves every service once.
func New(resolver Resolver, fallbacks map[string]string, log *zap.Logger) *Gateway {
	g := &Gateway{
		resolver:  resolver,
		fallbacks: fallbacks,
		client:    &http.Client{Timeout: 2 * time.Second},
		log:       log.Named("gateway"),
		proxies:   make(map[string]*httputil.ReverseProxy),
		services:  make(map[string]string),
	}
	g.Refresh()
	return g
}

// Refresh re-resolves every service.
func (g *Gateway) Refresh() {
	for name, fallback := range g.fallbacks {
		g.updateProxy(name, g.resolver.ResolveURL(name, fallback))
	}
}

// Watch refreshes routes every interval until ctx is done.
func (g *Gateway) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Refresh()
		}
	}
}

func (g *Gateway) updateProxy(serviceName, serviceURL string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.services[serviceName] == serviceURL {
		return
	}

	target, err := url.Parse(serviceURL)
	if err != nil {
		g.log.Error("Invalid service URL", zap.String("service", serviceName), zap.String("url", serviceURL), zap.Error(err))
		return
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		g.log.Warn("Proxy error", zap.String("service", serviceName), zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, `{"error": "service unavailable"}`)
	}

	g.proxies[serviceName] = proxy
	g.services[serviceName] = serviceURL
	g.log.Info("Updated route", zap.String("service", serviceName), zap.String("url", serviceURL))
}

func (g *Gateway) getProxy(serviceName string) *httputil.ReverseProxy {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.proxies[serviceName]
}

// Proxy forwards the request unchanged to serviceName.
func (g *Gateway) Proxy(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		proxy := g.getProxy(serviceName)
		if proxy == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": serviceName + " unavailable"})
			return
		}
		proxy.ServeHTTP(c.Writer, c.Request)
	}
}

// Register mounts prefix and prefix/* for serviceName.
func (g *Gateway) Register(r gin.IRouter, prefix, serviceName string) {
	r.Any(prefix, g.Proxy(serviceName))
	r.Any(prefix+"/*path", g.Proxy(serviceName))
}

func (g *Gateway) HealthCheck(c *gin.Context) {
	g.mutex.RLock()
	services := make(map[string]string, len(g.services))
	for k, v := range g.services {
		services[k] = v
	}
	g.mutex.RUnlock()

	statuses := make(map[string]string)
	allHealthy := true

	for name, url := range services {
		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, url+"/health", nil)
		if err != nil {
			statuses[name] = "unhealthy"
			allHealthy = false
			continue
		}
		resp, err := g.client.Do(req)
		if err != nil || resp.StatusCode != http.StatusOK {
			statuses[name] = "unhealthy"
			allHealthy = false
		} else {
			statuses[name] = "healthy"
		}
		if resp != nil {
			resp.Body.Close()
		}
	}

	status := "healthy"
	if !allHealthy {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"service":  "api-gateway",
		"services": statuses,
	})
}

func (g *Gateway) ListServices(c *gin.Context) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	c.JSON(http.StatusOK, gin.H{"services": g.services})
}
