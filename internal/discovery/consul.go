package discovery

import (
	"fmt"
	"net"

	"github.com/hashicorp/consul/api"
	"go.uber.org/zap"
)

type ConsulClient struct {
	client *api.Client
	log    *zap.Logger
}

type ServiceConfig struct {
	Name string
	ID   string
	Port int
	Tags []string
}

func NewConsulClient(host string, port int, log *zap.Logger) (*ConsulClient, error) {
	config := api.DefaultConfig()
	config.Address = fmt.Sprintf("%s:%d", host, port)

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Consul client: %w", err)
	}

	// Test connection
	if _, err := client.Agent().Self(); err != nil {
		return nil, fmt.Errorf("failed to connect to Consul: %w", err)
	}

	log = log.Named("consul")
	log.Info("Connected to Consul", zap.String("address", config.Address))

	return &ConsulClient{client: client, log: log}, nil
}

// getOutboundIP gets the preferred outbound IP of this machine
func getOutboundIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// Register registers a service with an HTTP health check on /health.
func (c *ConsulClient) Register(cfg ServiceConfig) error {
	hostIP := getOutboundIP()

	registration := &api.AgentServiceRegistration{
		ID:      cfg.ID,
		Name:    cfg.Name,
		Port:    cfg.Port,
		Address: hostIP,
		Tags:    cfg.Tags,
		Check: &api.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/health", hostIP, cfg.Port),
			Interval:                       "10s",
			Timeout:                        "5s",
			DeregisterCriticalServiceAfter: "30s",
		},
	}

	if err := c.client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}

	c.log.Info("Registered service",
		zap.String("name", cfg.Name),
		zap.String("id", cfg.ID),
		zap.String("address", fmt.Sprintf("%s:%d", hostIP, cfg.Port)),
	)
	return nil
}

func (c *ConsulClient) Deregister(serviceID string) error {
	if err := c.client.Agent().ServiceDeregister(serviceID); err != nil {
		return fmt.Errorf("failed to deregister service: %w", err)
	}

	c.log.Info("Deregistered service", zap.String("id", serviceID))
	return nil
}

// GetService returns the address of the first healthy instance of a service.
func (c *ConsulClient) GetService(serviceName string) (string, int, error) {
	services, _, err := c.client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to get service: %w", err)
	}

	if len(services) == 0 {
		return "", 0, fmt.Errorf("no healthy instances of %s found", serviceName)
	}

	service := services[0].Service
	address := service.Address
	if address == "" {
		address = "localhost"
	}

	return address, service.Port, nil
}

func (c *ConsulClient) GetServiceURL(serviceName string) (string, error) {
	address, port, err := c.GetService(serviceName)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("http://%s:%d", address, port), nil
}

// ResolveURL returns the URL of a healthy instance of serviceName, or
// fallback when Consul is not configured (nil client) or has no instance.
func (c *ConsulClient) ResolveURL(serviceName, fallback string) string {
	if c == nil {
		return fallback
	}

	url, err := c.GetServiceURL(serviceName)
	if err != nil {
		c.log.Warn("Service not found in Consul, using fallback",
			zap.String("service", serviceName),
			zap.String("fallback", fallback),
			zap.Error(err),
		)
		return fallback
	}
	return url
}

// Optional connects to Consul when enabled and returns nil when it is
// disabled or unreachable, so callers fall back to static URLs.
func Optional(enabled bool, host string, port int, log *zap.Logger) *ConsulClient {
	if !enabled {
		return nil
	}
	c, err := NewConsulClient(host, port, log)
	if err != nil {
		log.Warn("Consul unavailable, using static service URLs", zap.Error(err))
		return nil
	}
	return c
}
