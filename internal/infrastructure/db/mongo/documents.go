package mongo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
)

type userDoc struct {
	ID           int64     `bson:"_id"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
}

type clientDoc struct {
	ID        int64     `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Phone     string    `bson:"phone"`
	Status    string    `bson:"status"`
	CreatedAt time.Time `bson:"created_at"`
}

type orderDoc struct {
	ID          int64                `bson:"_id"`
	ClientID    int64                `bson:"client_id"`
	OrderDate   time.Time            `bson:"order_date"`
	TotalAmount primitive.Decimal128 `bson:"total_amount"`
	Status      string               `bson:"status"`
	Description string               `bson:"description"`
	Quantity    int                  `bson:"quantity"`
}

func toUserDoc(u *domain.User) userDoc {
	return userDoc{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt.UTC(),
	}
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

func toClientDoc(c *domain.Client) clientDoc {
	return clientDoc{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt.UTC(),
	}
}

func (d clientDoc) toDomain() *domain.Client {
	return &domain.Client{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Status:    domain.ClientStatus(d.Status),
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func toOrderDoc(o *domain.Order) (orderDoc, error) {
	amount, err := toDecimal128(o.TotalAmount)
	if err != nil {
		return orderDoc{}, err
	}
	return orderDoc{
		ID:          o.ID,
		ClientID:    o.ClientID,
		OrderDate:   o.OrderDate.UTC(),
		TotalAmount: amount,
		Status:      string(o.Status),
		Description: o.Description,
		Quantity:    o.Quantity,
	}, nil
}

func (d orderDoc) toDomain() (*domain.Order, error) {
	amount, err := fromDecimal128(d.TotalAmount)
	if err != nil {
		return nil, err
	}
	return &domain.Order{
		ID:          d.ID,
		ClientID:    d.ClientID,
		OrderDate:   d.OrderDate.UTC(),
		TotalAmount: amount,
		Status:      domain.OrderStatus(d.Status),
		Description: d.Description,
		Quantity:    d.Quantity,
	}, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.StringFixed(2))
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("encode amount %s: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("decode amount %s: %w", v, err)
	}
	return d, nil
}
