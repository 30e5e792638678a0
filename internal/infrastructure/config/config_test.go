package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = strings.Repeat("k", 64)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_KEY": testKey,
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "ordersdesk-auth", cfg.JWT.Issuer)
	assert.Equal(t, "ordersdesk", cfg.JWT.Audience)
	assert.Equal(t, "Admin1234!", cfg.AdminPassword)
	assert.True(t, cfg.OrdersRequireAuth)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Redis.IdempotencyTTL)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_KEY":             testKey,
		"ENV":                 "Development",
		"DB_DRIVER":           "Postgres",
		"DB_DSN":              "host=localhost user=app dbname=orders",
		"REDIS_ADDR":          "localhost:6379",
		"IDEMPOTENCY_TTL":     "1h",
		"CORS_ORIGINS":        "http://localhost:4200,https://app.example.com",
		"ORDERS_REQUIRE_AUTH": "false",
	}))
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, time.Hour, cfg.Redis.IdempotencyTTL)
	assert.Equal(t, []string{"http://localhost:4200", "https://app.example.com"}, cfg.CORSOrigins)
	assert.False(t, cfg.OrdersRequireAuth)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadWith_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing key", map[string]string{}},
		{"unknown driver", map[string]string{"JWT_KEY": testKey, "DB_DRIVER": "oracle"}},
		{"negative ttl", map[string]string{"JWT_KEY": testKey, "REDIS_ADDR": "localhost:6379", "IDEMPOTENCY_TTL": "-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(tt.env))
			assert.Error(t, err)
		})
	}
}
