package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/ordersdesk/ordersdesk/internal/api"
	"github.com/ordersdesk/ordersdesk/internal/api/handler"
	"github.com/ordersdesk/ordersdesk/internal/core/ports"
	"github.com/ordersdesk/ordersdesk/internal/core/service"
	"github.com/ordersdesk/ordersdesk/internal/infrastructure/store"
	"github.com/ordersdesk/ordersdesk/internal/pkg/jwtutil"
	"github.com/ordersdesk/ordersdesk/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Run the auth service (register, login)",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd, "auth")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuth(cmd.Context())
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Run the orders service (orders, clients, stats)",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd, "orders")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOrders(cmd.Context())
	},
}

func newTokenManager() (*jwtutil.Manager, error) {
	return jwtutil.NewManager(jwtutil.Config{
		Key:      cfg.JWT.Key,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	})
}

func runAuth(ctx context.Context) error {
	log := logger.Get()
	tokens, err := newTokenManager()
	if err != nil {
		return err
	}

	stores, err := store.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores(stores)

	authService := service.NewAuthService(stores.Users, tokens, log)
	created, err := authService.EnsureAdmin(ctx, cfg.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		log.Warn().Msg("bootstrap admin account created, change ADMIN_PASSWORD")
	}

	e := api.NewAuthRouter(api.AuthRouterDeps{
		Common: api.Common{
			Logger:      log,
			CORSOrigins: cfg.CORSOrigins,
			Health:      map[string]handler.Pinger{stores.Name: stores.Pinger},
		},
		Auth: authService,
	})
	return serve(ctx, e, "auth")
}

func runOrders(ctx context.Context) error {
	log := logger.Get()
	var tokens *jwtutil.Manager
	if cfg.OrdersRequireAuth {
		m, err := newTokenManager()
		if err != nil {
			return err
		}
		tokens = m
	} else {
		log.Warn().Msg("ORDERS_REQUIRE_AUTH=false, /Orders and /Clients are unauthenticated")
	}

	stores, err := store.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores(stores)

	health := map[string]handler.Pinger{stores.Name: stores.Pinger}

	idem, err := store.OpenIdempotency(ctx, cfg, log)
	if err != nil {
		return err
	}
	var idemStore ports.IdempotencyStore
	if idem != nil {
		defer func() {
			if err := idem.Close(); err != nil {
				log.Error().Err(err).Msg("redis close")
			}
		}()
		health["redis"] = idem.Pinger
		idemStore = idem.Store
	}

	deps := api.OrdersRouterDeps{
		Common: api.Common{
			Logger:      log,
			CORSOrigins: cfg.CORSOrigins,
			Health:      health,
		},
		Orders:      service.NewOrderService(stores.Orders, stores.Clients, idemStore, log),
		Clients:     service.NewClientService(stores.Clients, idemStore, log),
		RequireAuth: cfg.OrdersRequireAuth,
	}
	if tokens != nil {
		deps.Tokens = tokens
	}
	return serve(ctx, api.NewOrdersRouter(deps), "orders")
}

// serve runs e until SIGINT/SIGTERM, then drains in-flight requests.
func serve(ctx context.Context, e *echo.Echo, name string) error {
	log := logger.Get()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msgf("%s service listening", name)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func closeStores(s *store.Stores) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Close(ctx); err != nil {
		log.Error().Err(err).Msg("store close")
	}
}
