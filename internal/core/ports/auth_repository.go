package ports

import (
	"context"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
)

// AuthRepository defines the interface for user authentication persistence.
type AuthRepository interface {
	// ExistsByUsername backs the read-then-write uniqueness check at registration.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create must return domain.ErrUserExists when the store's unique index rejects the row.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
