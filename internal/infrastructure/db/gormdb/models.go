package gormdb

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
)

// money stores an exact decimal. SQLite gives numeric columns REAL storage,
// so there the value is kept as text; other dialects use numeric(18,2).
type money struct {
	decimal.Decimal
}

func (money) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "text"
	}
	return "numeric(18,2)"
}

// --- Persistence models ---
// These mirror the domain types but carry gorm tags, so schema concerns stay
// out of the core package.

type userModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:100;not null"`
	Role         string    `gorm:"size:20;not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userModel) TableName() string { return "users" }

type clientModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:200;not null"`
	Email     string    `gorm:"size:200"`
	Phone     string    `gorm:"size:50"`
	Status    string    `gorm:"size:20;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (clientModel) TableName() string { return "clients" }

type orderModel struct {
	ID          int64        `gorm:"primaryKey;autoIncrement"`
	ClientID    int64        `gorm:"not null;index"`
	Client      *clientModel `gorm:"foreignKey:ClientID"`
	OrderDate   time.Time    `gorm:"not null;index"`
	TotalAmount money        `gorm:"not null"`
	Status      string       `gorm:"size:20;not null;index"`
	Description string       `gorm:"size:500"`
	Quantity    int          `gorm:"not null;default:0"`
}

func (orderModel) TableName() string { return "orders" }

// --- Mapping ---

func toUserModel(u *domain.User) *userModel {
	return &userModel{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt.UTC(),
	}
}

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func toClientModel(c *domain.Client) *clientModel {
	return &clientModel{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt.UTC(),
	}
}

func (m *clientModel) toDomain() *domain.Client {
	return &domain.Client{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Status:    domain.ClientStatus(m.Status),
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func toOrderModel(o *domain.Order) *orderModel {
	return &orderModel{
		ID:          o.ID,
		ClientID:    o.ClientID,
		OrderDate:   o.OrderDate.UTC(),
		TotalAmount: money{o.TotalAmount},
		Status:      string(o.Status),
		Description: o.Description,
		Quantity:    o.Quantity,
	}
}

func (m *orderModel) toDomain() *domain.Order {
	o := &domain.Order{
		ID:          m.ID,
		ClientID:    m.ClientID,
		OrderDate:   m.OrderDate.UTC(),
		TotalAmount: m.TotalAmount.Decimal,
		Status:      domain.OrderStatus(m.Status),
		Description: m.Description,
		Quantity:    m.Quantity,
	}
	if m.Client != nil {
		o.Client = m.Client.toDomain()
	}
	return o
}
