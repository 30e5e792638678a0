package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
)

// OrderFilter narrows List. A zero value returns every order.
type OrderFilter struct {
	Status domain.OrderStatus // optional exact match
}

// OrderRepository defines persistence operations for orders. Reads attach the
// referenced client to each order.
type OrderRepository interface {
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	// Create assigns o.ID.
	Create(ctx context.Context, o *domain.Order) error
	// Update overwrites every mutable column; returns domain.ErrOrderNotFound
	// when no row has o.ID.
	Update(ctx context.Context, o *domain.Order) error
	Delete(ctx context.Context, id int64) error

	// CountByStatus returns the number of orders per status. Missing statuses
	// have no entry.
	CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error)
	// Amounts returns the total amounts of every order with the given status so
	// the caller can sum them without going through floating point.
	Amounts(ctx context.Context, status domain.OrderStatus) ([]decimal.Decimal, error)
	// OrderDatesBetween returns the order dates in [from, to), ascending.
	OrderDatesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)
}

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	List(ctx context.Context) ([]*domain.Client, error)
	FindByID(ctx context.Context, id int64) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client) error
	// Update returns domain.ErrClientNotFound when no row has c.ID.
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context, status domain.ClientStatus) (int64, error)
}

// IdempotencyStore remembers which resource a client-supplied idempotency key
// produced, so a retried create returns the original resource.
type IdempotencyStore interface {
	// Lookup reports the id stored for key under scope, if any.
	Lookup(ctx context.Context, scope, key string) (int64, bool, error)
	Remember(ctx context.Context, scope, key string, id int64) error
}
