package service

import (
	"crypto/tls"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youtube-seguro/video-catalog-go/internal/config"
)

func TestParseRedisAddr(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.RedisConfig
		wantAddr     string
		wantPassword string
		wantDB       int
		wantTLS      bool
		wantError    bool
	}{
		{
			name:     "simple host:port format",
			cfg:      config.RedisConfig{Addr: "localhost:6379"},
			wantAddr: "localhost:6379",
		},
		{
			name:         "host:port keeps configured password and db",
			cfg:          config.RedisConfig{Addr: "cache:6379", Password: "s3cret", DB: 2},
			wantAddr:     "cache:6379",
			wantPassword: "s3cret",
			wantDB:       2,
		},
		{
			name:         "redis URL with password and database number",
			cfg:          config.RedisConfig{Addr: "redis://:secretpass@redis.example.com:6379/1"},
			wantAddr:     "redis.example.com:6379",
			wantPassword: "secretpass",
			wantDB:       1,
		},
		{
			name:         "redis URL with URL-encoded password",
			cfg:          config.RedisConfig{Addr: "redis://:p%40ssw0rd%21@localhost:6379/0"},
			wantAddr:     "localhost:6379",
			wantPassword: "p@ssw0rd!",
		},
		{
			name:         "rediss URL with TLS",
			cfg:          config.RedisConfig{Addr: "rediss://:password@secure-redis.example.com:6380/0"},
			wantAddr:     "secure-redis.example.com:6380",
			wantPassword: "password",
			wantTLS:      true,
		},
		{
			name:      "invalid scheme",
			cfg:       config.RedisConfig{Addr: "http://localhost:6379"},
			wantError: true,
		},
		{
			name:      "invalid database number",
			cfg:       config.RedisConfig{Addr: "redis://localhost:6379/abc"},
			wantError: true,
		},
		{
			name:     "redis URL without port uses default port",
			cfg:      config.RedisConfig{Addr: "redis://cache"},
			wantAddr: "cache:6379",
		},
		{
			name:     "URL ignores configured password and db",
			cfg:      config.RedisConfig{Addr: "redis://cache:6379", Password: "unused", DB: 3},
			wantAddr: "cache:6379",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRedisAddr(tt.cfg)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAddr, got.Addr)
			assert.Equal(t, tt.wantPassword, got.Password)
			assert.Equal(t, tt.wantDB, got.DB)
			if tt.wantTLS {
				require.NotNil(t, got.TLSConfig)
				assert.Equal(t, uint16(tls.VersionTLS12), got.TLSConfig.MinVersion)
			} else {
				assert.Nil(t, got.TLSConfig)
			}
		})
	}
}
