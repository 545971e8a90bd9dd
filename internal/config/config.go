// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Store      StoreConfig
	Catalog    CatalogConfig
	Moderation ModerationConfig
	RabbitMQ   RabbitMQConfig
	Redis      RedisConfig
	YouTube    YouTubeConfig
	Logging    LoggingConfig
}

// ServerConfig contains HTTP server configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ServerConfig struct {
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	APIKeys         []string
	AllowedOrigins  []string
}

// DatabaseConfig contains database connection configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type DatabaseConfig struct {
	Host           string
	Name           string
	User           string
	Password       string
	SSLMode        string
	Port           int
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
	MaxLifetime    time.Duration
}

// StoreConfig selects the catalog storage backend.
type StoreConfig struct {
	Driver string
}

// CatalogConfig contains query behaviour switches.
type CatalogConfig struct {
	ListOrder       string
	StrictYouTubeID bool
}

// ModerationConfig controls blocked-term enforcement on new videos.
type ModerationConfig struct {
	Enabled bool
}

// RabbitMQConfig contains RabbitMQ connection and exchange configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type RabbitMQConfig struct {
	Enabled    bool
	Host       string
	User       string
	Password   string
	Exchange   string
	Queue      string
	BindingKey string
	Port       int
}

// RedisConfig contains the blocked-term cache connection. An empty Addr
// disables the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// YouTubeConfig holds the Data API key used by the seeding tool.
type YouTubeConfig struct {
	APIKey string
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values the server cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("invalid store.driver %q (must be postgres or memory)", c.Store.Driver)
	}

	switch c.Catalog.ListOrder {
	case "default", "random":
	default:
		return fmt.Errorf("invalid catalog.listorder %q (must be default or random)", c.Catalog.ListOrder)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}

	return nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 10000)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)
	viper.SetDefault("server.readtimeout", 15*time.Second)
	viper.SetDefault("server.writetimeout", 15*time.Second)
	viper.SetDefault("server.apikeys", []string{})
	viper.SetDefault("server.allowedorigins", []string{"*"})

	// Database
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "videos")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.maxconnections", 25)
	viper.SetDefault("database.minconnections", 5)
	viper.SetDefault("database.maxidletime", 30*time.Minute)
	viper.SetDefault("database.maxlifetime", 1*time.Hour)

	// Store and catalog behaviour
	viper.SetDefault("store.driver", "postgres")
	viper.SetDefault("catalog.listorder", "default")
	viper.SetDefault("catalog.strictyoutubeid", true)
	viper.SetDefault("moderation.enabled", true)

	// RabbitMQ
	viper.SetDefault("rabbitmq.enabled", false)
	viper.SetDefault("rabbitmq.host", "localhost")
	viper.SetDefault("rabbitmq.port", 5672)
	viper.SetDefault("rabbitmq.user", "guest")
	viper.SetDefault("rabbitmq.password", "guest")
	viper.SetDefault("rabbitmq.exchange", "catalog.events")
	viper.SetDefault("rabbitmq.queue", "catalog.events.audit")
	viper.SetDefault("rabbitmq.bindingkey", "#")

	// Redis
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// YouTube
	viper.SetDefault("youtube.apikey", "")

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
