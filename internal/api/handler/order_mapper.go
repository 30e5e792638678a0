package handler

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
	"github.com/ordersdesk/ordersdesk/internal/core/ports"
)

const bucketDateLayout = "2006-01-02"

var orderDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", bucketDateLayout}

// --- Request → Service input ---

func toOrderInput(req orderRequest) (ports.OrderInput, error) {
	date, err := parseOrderDate(req.OrderDate)
	if err != nil {
		return ports.OrderInput{}, err
	}
	return ports.OrderInput{
		ID:          req.ID,
		ClientID:    req.ClientID,
		OrderDate:   date,
		TotalAmount: req.TotalAmount,
		Status:      req.Status,
		Description: req.Description,
		Quantity:    req.Quantity,
	}, nil
}

// parseOrderDate returns the zero time for an empty value; the service
// substitutes the creation time.
func parseOrderDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: orderDate %q is not a valid date", domain.ErrInvalidInput, s)
}

func toClientInput(req clientRequest) ports.ClientInput {
	return ports.ClientInput{
		ID:     req.ID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: req.Status,
	}
}

// --- Domain → HTTP response ---

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func toClientResponse(c *domain.Client) clientResponse {
	return clientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt.UTC(),
	}
}

func toClientListResponse(clients []*domain.Client) []clientResponse {
	out := make([]clientResponse, len(clients))
	for i, c := range clients {
		out[i] = toClientResponse(c)
	}
	return out
}

func toOrderResponse(o *domain.Order) orderResponse {
	resp := orderResponse{
		ID:          o.ID,
		ClientID:    o.ClientID,
		OrderDate:   o.OrderDate.UTC(),
		TotalAmount: money(o.TotalAmount),
		Status:      string(o.Status),
		Description: o.Description,
		Quantity:    o.Quantity,
	}
	if o.Client != nil {
		c := toClientResponse(o.Client)
		resp.Client = &c
	}
	return resp
}

func toOrderListResponse(orders []*domain.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return out
}

func toStatsResponse(s *domain.Stats) statsResponse {
	buckets := make([]dateBucketResponse, len(s.OrdersByDate))
	for i, b := range s.OrdersByDate {
		buckets[i] = dateBucketResponse{
			Date:    b.Date.UTC().Format(bucketDateLayout),
			Count:   b.Count,
			ISOYear: b.ISOYear,
			ISOWeek: b.ISOWeek,
		}
	}
	return statsResponse{
		Period:          string(s.Period),
		TotalOrders:     s.TotalOrders,
		CompletedOrders: s.CompletedOrders,
		ApprovedOrders:  s.CompletedOrders,
		PendingOrders:   s.PendingOrders,
		RejectedOrders:  s.RejectedOrders,
		ActiveClients:   s.ActiveClients,
		TotalRevenue:    money(s.TotalRevenue),
		OrdersByDate:    buckets,
	}
}
