package handler

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// errorResponse is the standard error envelope returned on 4xx/5xx responses
// of the orders service.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// orderRequest is the body of POST and PUT /Orders. orderDate accepts RFC 3339
// or a bare calendar date; totalAmount accepts a JSON number or string.
type orderRequest struct {
	ID          int64           `json:"id"`
	ClientID    int64           `json:"clientId"    validate:"required,gt=0"`
	OrderDate   string          `json:"orderDate"`
	TotalAmount decimal.Decimal `json:"totalAmount" swaggertype:"number"`
	Status      string          `json:"status"`
	Description string          `json:"description" validate:"max=500"`
	Quantity    int             `json:"quantity"    validate:"gte=0"`
}

type clientRequest struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"   validate:"required,max=200"`
	Email  string `json:"email"  validate:"omitempty,email"`
	Phone  string `json:"phone"  validate:"max=50"`
	Status string `json:"status"`
}

// --- Response types ---

type clientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type orderResponse struct {
	ID          int64           `json:"id"`
	ClientID    int64           `json:"clientId"`
	Client      *clientResponse `json:"client"`
	OrderDate   time.Time       `json:"orderDate"`
	TotalAmount json.Number     `json:"totalAmount" swaggertype:"number"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
}

type dateBucketResponse struct {
	Date    string `json:"date"`
	Count   int64  `json:"count"`
	ISOYear int    `json:"isoYear,omitempty"`
	ISOWeek int    `json:"isoWeek,omitempty"`
}

type statsResponse struct {
	Period          string               `json:"period"`
	TotalOrders     int64                `json:"totalOrders"`
	CompletedOrders int64                `json:"completedOrders"`
	ApprovedOrders  int64                `json:"approvedOrders"`
	PendingOrders   int64                `json:"pendingOrders"`
	RejectedOrders  int64                `json:"rejectedOrders"`
	ActiveClients   int64                `json:"activeClients"`
	TotalRevenue    json.Number          `json:"totalRevenue" swaggertype:"number"`
	OrdersByDate    []dateBucketResponse `json:"ordersByDate"`
}
