package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the approval state of an order. Any status may replace any
// other; there is no transition table.
type OrderStatus string

const (
	OrderPending  OrderStatus = "Pending"
	OrderApproved OrderStatus = "Approved"
	OrderRejected OrderStatus = "Rejected"
)

// OrderStatuses lists every valid status in display order.
var OrderStatuses = []OrderStatus{OrderPending, OrderApproved, OrderRejected}

// ParseOrderStatus resolves a status name case-insensitively. Callers that
// want a default for an empty value handle that before calling.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range OrderStatuses {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, s)
}

// Order is a sale registered against a client.
type Order struct {
	ID          int64
	ClientID    int64
	Client      *Client // eagerly loaded on reads, nil when the client no longer exists
	OrderDate   time.Time
	TotalAmount decimal.Decimal
	Status      OrderStatus
	Description string
	Quantity    int
}
