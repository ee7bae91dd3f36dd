package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "MINIBILL"

type Config struct {
	App       AppConfig
	Log       LogConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RabbitMQ  RabbitMQConfig
	Consul    ConsulConfig
	Services  ServicesConfig
	Directory DirectoryConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port int
	Seed bool // insert sample rows into empty directory tables
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Migrate  bool
}

// DSN is the lib/pq keyword connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL time.Duration
	Stream   string // high-value signal stream
}

type RabbitMQConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	Exchange       string
	Partitions     int
	ConsumerGroup  string
	Prefetch       int
	PublishTimeout time.Duration
}

// URL is the amqp connection URL.
func (r RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", r.User, r.Password, r.Host, r.Port)
}

type ConsulConfig struct {
	Enabled bool
	Host    string
	Port    int
}

// ServicesConfig holds the fallback base URLs used when consul has no healthy instance.
type ServicesConfig struct {
	CustomerURL  string
	InventoryURL string
	BillingURL   string
}

type DirectoryConfig struct {
	LookupTimeout time.Duration
}

// servicePorts are the default listen ports per service.
var servicePorts = map[string]int{
	"api-gateway":       8080,
	"customer-service":  8081,
	"inventory-service": 8082,
	"billing-service":   8083,
}

// serviceGroups are the default consumer groups per service.
var serviceGroups = map[string]string{
	"customer-service": "billing-group",
	"billing-service":  "bill-stream-filter",
}

// Load reads configuration for the named service.
// Priority: MINIBILL_* environment variables, then config.toml, then defaults.
func Load(service string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/minibill")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, service)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetInt("app.port"),
			Seed: v.GetBool("app.seed"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			DBName:   v.GetString("database.dbname"),
			SSLMode:  v.GetString("database.sslmode"),
			Migrate:  v.GetBool("database.migrate"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			CacheTTL: v.GetDuration("redis.cache_ttl"),
			Stream:   v.GetString("redis.stream"),
		},
		RabbitMQ: RabbitMQConfig{
			Host:           v.GetString("rabbitmq.host"),
			Port:           v.GetInt("rabbitmq.port"),
			User:           v.GetString("rabbitmq.user"),
			Password:       v.GetString("rabbitmq.password"),
			Exchange:       v.GetString("rabbitmq.exchange"),
			Partitions:     v.GetInt("rabbitmq.partitions"),
			ConsumerGroup:  v.GetString("rabbitmq.consumer_group"),
			Prefetch:       v.GetInt("rabbitmq.prefetch"),
			PublishTimeout: v.GetDuration("rabbitmq.publish_timeout"),
		},
		Consul: ConsulConfig{
			Enabled: v.GetBool("consul.enabled"),
			Host:    v.GetString("consul.host"),
			Port:    v.GetInt("consul.port"),
		},
		Services: ServicesConfig{
			CustomerURL:  v.GetString("services.customer_url"),
			InventoryURL: v.GetString("services.inventory_url"),
			BillingURL:   v.GetString("services.billing_url"),
		},
		Directory: DirectoryConfig{
			LookupTimeout: v.GetDuration("directory.lookup_timeout"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, service string) {
	v.SetDefault("app.name", service)
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", servicePorts[service])
	v.SetDefault("app.seed", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "minibill")
	v.SetDefault("database.password", "minibill123")
	v.SetDefault("database.dbname", "minibill")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.migrate", true)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", 5*time.Minute)
	v.SetDefault("redis.stream", "bills:high-value")

	v.SetDefault("rabbitmq.host", "localhost")
	v.SetDefault("rabbitmq.port", 5672)
	v.SetDefault("rabbitmq.user", "guest")
	v.SetDefault("rabbitmq.password", "guest")
	v.SetDefault("rabbitmq.exchange", "bill-created")
	v.SetDefault("rabbitmq.partitions", 3)
	v.SetDefault("rabbitmq.consumer_group", serviceGroups[service])
	v.SetDefault("rabbitmq.prefetch", 10)
	v.SetDefault("rabbitmq.publish_timeout", 5*time.Second)

	v.SetDefault("consul.enabled", true)
	v.SetDefault("consul.host", "localhost")
	v.SetDefault("consul.port", 8500)

	v.SetDefault("services.customer_url", "http://customer-service:8081")
	v.SetDefault("services.inventory_url", "http://inventory-service:8082")
	v.SetDefault("services.billing_url", "http://billing-service:8083")

	v.SetDefault("directory.lookup_timeout", 3*time.Second)
}

func (c *Config) validate() error {
	if c.App.Port <= 0 {
		return fmt.Errorf("app.port must be set for %q", c.App.Name)
	}
	if c.RabbitMQ.Partitions <= 0 {
		return errors.New("rabbitmq.partitions must be positive")
	}
	if c.RabbitMQ.Exchange == "" {
		return errors.New("rabbitmq.exchange is required")
	}
	if c.Directory.LookupTimeout <= 0 {
		return errors.New("directory.lookup_timeout must be positive")
	}
	return nil
}
