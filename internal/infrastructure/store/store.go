// Package store opens the persistence backend selected by configuration and
// exposes it through the core ports.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ordersdesk/ordersdesk/internal/core/ports"
	"github.com/ordersdesk/ordersdesk/internal/infrastructure/config"
	"github.com/ordersdesk/ordersdesk/internal/infrastructure/db/gormdb"
	mongostore "github.com/ordersdesk/ordersdesk/internal/infrastructure/db/mongo"
	redisstore "github.com/ordersdesk/ordersdesk/internal/infrastructure/db/redis"
)

// Pinger is a readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Stores bundles the repositories of the selected backend.
type Stores struct {
	Users   ports.AuthRepository
	Clients ports.ClientRepository
	Orders  ports.OrderRepository

	// Pinger checks the backend; Name labels it in readiness output.
	Name   string
	Pinger Pinger

	closeFn func(ctx context.Context) error
}

// Close releases the backend connections.
func (s *Stores) Close(ctx context.Context) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}

// Open connects to the backend named by cfg.DB.Driver.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres, config.DriverSQLite:
		db, err := gormdb.Open(ctx, gormdb.Config{
			Driver:          cfg.DB.Driver,
			DSN:             cfg.DB.DSN,
			MaxOpenConns:    cfg.DB.MaxOpenConns,
			MaxIdleConns:    cfg.DB.MaxIdleConns,
			ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		}, log)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Users:   gormdb.NewUserRepository(db),
			Clients: gormdb.NewClientRepository(db),
			Orders:  gormdb.NewOrderRepository(db),
			Name:    cfg.DB.Driver,
			Pinger:  gormdb.Pinger{DB: db},
			closeFn: func(context.Context) error { return gormdb.Close(db) },
		}, nil

	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

		clients := mongostore.NewClientRepository(db)
		return &Stores{
			Users:   mongostore.NewUserRepository(db),
			Clients: clients,
			Orders:  mongostore.NewOrderRepository(db, clients),
			Name:    "mongodb",
			Pinger:  mongostore.Pinger{DB: db},
			closeFn: client.Disconnect,
		}, nil
	}
	return nil, fmt.Errorf("store: unsupported driver %q", cfg.DB.Driver)
}

// Idempotency is the optional Redis-backed idempotency store.
type Idempotency struct {
	Store  ports.IdempotencyStore
	Pinger Pinger
	Close  func() error
}

// OpenIdempotency connects to Redis when cfg.Redis.Addr is set. It returns
// nil without error when Redis is disabled.
func OpenIdempotency(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Idempotency, error) {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("redis disabled, Idempotency-Key headers are ignored")
		return nil, nil
	}

	client, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:    cfg.Redis.Addr,
		DB:      cfg.Redis.DB,
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.IdempotencyTTL).Msg("redis connected")

	return &Idempotency{
		Store:  redisstore.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL),
		Pinger: redisstore.Pinger{Client: client},
		Close:  client.Close,
	}, nil
}
