package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
	"github.com/ordersdesk/ordersdesk/internal/core/ports"
)

const (
	scopeOrders  = "orders"
	scopeClients = "clients"
)

type OrderService struct {
	orders  ports.OrderRepository
	clients ports.ClientRepository
	idem    ports.IdempotencyStore
	logger  zerolog.Logger
	now     func() time.Time
}

// NewOrderService wires the order use cases. idem may be nil, in which case
// Idempotency-Key headers are ignored.
func NewOrderService(
	orders ports.OrderRepository,
	clients ports.ClientRepository,
	idem ports.IdempotencyStore,
	logger zerolog.Logger,
) *OrderService {
	if idem == nil {
		idem = noopIdempotency{}
	}
	return &OrderService{
		orders:  orders,
		clients: clients,
		idem:    idem,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *OrderService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx, ports.OrderFilter{})
}

func (s *OrderService) ListOrdersByStatus(ctx context.Context, status string) ([]*domain.Order, error) {
	st, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	return s.orders.List(ctx, ports.OrderFilter{Status: st})
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// CreateOrder persists a new order. If an idempotency key is provided and
// already seen, the previously created order is returned without side effects.
func (s *OrderService) CreateOrder(ctx context.Context, in ports.OrderInput, idempotencyKey string) (*ports.CreateResult[*domain.Order], error) {
	if idempotencyKey != "" {
		if existing := s.replayOrder(ctx, idempotencyKey); existing != nil {
			return &ports.CreateResult[*domain.Order]{Value: existing, Replayed: true}, nil
		}
	}

	order, err := s.buildOrder(ctx, in)
	if err != nil {
		return nil, err
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = s.now().UTC()
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, fmt.Errorf("create order: %w", err)
	}

	if idempotencyKey != "" {
		if err := s.idem.Remember(ctx, scopeOrders, idempotencyKey, order.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", idempotencyKey).Msg("failed to remember idempotency key")
		}
	}

	s.logger.Info().Int64("order_id", order.ID).Int64("client_id", order.ClientID).Msg("order created")

	// Re-read so the response carries the joined client like every other read.
	created, err := s.orders.FindByID(ctx, order.ID)
	if err != nil {
		return &ports.CreateResult[*domain.Order]{Value: order}, nil
	}
	return &ports.CreateResult[*domain.Order]{Value: created}, nil
}

// UpdateOrder replaces every mutable field of the order identified by id.
func (s *OrderService) UpdateOrder(ctx context.Context, id int64, in ports.OrderInput) error {
	if id != in.ID {
		return domain.ErrIDMismatch
	}

	order, err := s.buildOrder(ctx, in)
	if err != nil {
		return err
	}
	if order.OrderDate.IsZero() {
		current, err := s.orders.FindByID(ctx, id)
		if err != nil {
			return err
		}
		order.OrderDate = current.OrderDate
	}

	if err := s.orders.Update(ctx, order); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("update order: %w", err)
	}

	s.logger.Info().Int64("order_id", id).Str("status", string(order.Status)).Msg("order updated")
	return nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("delete order: %w", err)
	}
	s.logger.Info().Int64("order_id", id).Msg("order deleted")
	return nil
}

// maxAmount is the exclusive upper bound that fits numeric(18,2).
var maxAmount = decimal.New(1, 16)

// buildOrder validates input and maps it onto a domain order.
func (s *OrderService) buildOrder(ctx context.Context, in ports.OrderInput) (*domain.Order, error) {
	status := domain.OrderPending
	if in.Status != "" {
		st, err := domain.ParseOrderStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}
	if in.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientId is required", domain.ErrInvalidInput)
	}
	if in.TotalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: totalAmount must not be negative", domain.ErrInvalidInput)
	}
	if !in.TotalAmount.Equal(in.TotalAmount.Round(2)) {
		return nil, fmt.Errorf("%w: totalAmount must have at most 2 decimal places", domain.ErrInvalidInput)
	}
	if in.TotalAmount.GreaterThanOrEqual(maxAmount) {
		return nil, fmt.Errorf("%w: totalAmount must be less than %s", domain.ErrInvalidInput, maxAmount)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidInput)
	}

	if _, err := s.clients.FindByID(ctx, in.ClientID); err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return nil, domain.ErrUnknownClient
		}
		return nil, fmt.Errorf("lookup client: %w", err)
	}

	return &domain.Order{
		ID:          in.ID,
		ClientID:    in.ClientID,
		OrderDate:   in.OrderDate.UTC(),
		TotalAmount: in.TotalAmount,
		Status:      status,
		Description: in.Description,
		Quantity:    in.Quantity,
	}, nil
}

func (s *OrderService) replayOrder(ctx context.Context, key string) *domain.Order {
	id, ok, err := s.idem.Lookup(ctx, scopeOrders, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !ok {
		return nil
	}
	existing, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Int64("order_id", id).Msg("idempotent replay")
	return existing
}

type noopIdempotency struct{}

func (noopIdempotency) Lookup(context.Context, string, string) (int64, bool, error) {
	return 0, false, nil
}

func (noopIdempotency) Remember(context.Context, string, string, int64) error { return nil }
