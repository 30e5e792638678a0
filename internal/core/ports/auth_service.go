package ports

import (
	"context"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string, role domain.Role) error
	Login(ctx context.Context, username, password string) (string, error)
}
