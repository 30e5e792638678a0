package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
)

// OrderInput carries the writable fields of an order. Status is the raw wire
// value and is parsed by the service; empty means Pending.
type OrderInput struct {
	ID          int64
	ClientID    int64
	OrderDate   time.Time // zero means "now" on create
	TotalAmount decimal.Decimal
	Status      string
	Description string
	Quantity    int
}

// CreateResult wraps a created resource. Replayed is true when an
// Idempotency-Key matched an earlier create.
type CreateResult[T any] struct {
	Value    T
	Replayed bool
}

// OrderService defines use-case operations for orders and the dashboard.
type OrderService interface {
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	ListOrdersByStatus(ctx context.Context, status string) ([]*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	CreateOrder(ctx context.Context, in OrderInput, idempotencyKey string) (*CreateResult[*domain.Order], error)
	UpdateOrder(ctx context.Context, id int64, in OrderInput) error
	DeleteOrder(ctx context.Context, id int64) error
	Stats(ctx context.Context, period string) (*domain.Stats, error)
}

// ClientInput carries the writable fields of a client.
type ClientInput struct {
	ID     int64
	Name   string
	Email  string
	Phone  string
	Status string
}

// ClientService defines use-case operations for clients.
type ClientService interface {
	ListClients(ctx context.Context) ([]*domain.Client, error)
	GetClient(ctx context.Context, id int64) (*domain.Client, error)
	CreateClient(ctx context.Context, in ClientInput, idempotencyKey string) (*CreateResult[*domain.Client], error)
	UpdateClient(ctx context.Context, id int64, in ClientInput) error
	DeleteClient(ctx context.Context, id int64) error
}
