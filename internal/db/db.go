package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/youtube-seguro/video-catalog-go/internal/config"
)

// Config holds the database configuration parameters.
type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:            "localhost",
		Port:            5432,
		User:            "postgres",
		Password:        "postgres",
		Database:        "videos",
		SSLMode:         "disable",
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}
}

// FromAppConfig converts the application database section into a pool Config.
// Zero values fall back to DefaultConfig.
func FromAppConfig(c config.DatabaseConfig) *Config {
	cfg := DefaultConfig()
	if c.Host != "" {
		cfg.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Port = c.Port
	}
	if c.User != "" {
		cfg.User = c.User
	}
	cfg.Password = c.Password
	if c.Name != "" {
		cfg.Database = c.Name
	}
	if c.SSLMode != "" {
		cfg.SSLMode = c.SSLMode
	}
	if c.MaxConnections > 0 {
		cfg.MaxConns = int32(c.MaxConnections)
	}
	if c.MinConnections > 0 {
		cfg.MinConns = int32(c.MinConnections)
	}
	if c.MaxLifetime > 0 {
		cfg.MaxConnLifetime = c.MaxLifetime
	}
	if c.MaxIdleTime > 0 {
		cfg.MaxConnIdleTime = c.MaxIdleTime
	}
	return cfg
}

// ConnString renders the libpq keyword/value connection string.
func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// URL renders the connection as a postgres:// URL, as golang-migrate expects.
func (c *Config) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}

// NewPool creates a new PostgreSQL connection pool with the given configuration.
func NewPool(ctx context.Context, cfg *Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w: %w", ErrStoreUnavailable, err)
	}

	return pool, nil
}

// Close closes the database connection pool gracefully.
func Close(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}
