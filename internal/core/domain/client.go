package domain

import (
	"fmt"
	"strings"
	"time"
)

// ClientStatus marks whether a client counts towards the active clients figure.
type ClientStatus string

const (
	ClientActive   ClientStatus = "Active"
	ClientInactive ClientStatus = "Inactive"
)

// ParseClientStatus resolves a status name case-insensitively. An empty
// string yields ClientActive.
func ParseClientStatus(s string) (ClientStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "active":
		return ClientActive, nil
	case "inactive":
		return ClientInactive, nil
	}
	return "", fmt.Errorf("%w: unknown client status %q", ErrInvalidInput, s)
}

// Client is a customer of the business that orders are placed for.
type Client struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Status    ClientStatus
	CreatedAt time.Time
}
