package gormdb

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
	"github.com/ordersdesk/ordersdesk/internal/core/ports"
)

// OrderRepository stores orders. Reads preload the referenced client.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*domain.Order, error) {
	q := r.db.WithContext(ctx).Preload("Client").Order("id asc")
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}

	var models []orderModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := make([]*domain.Order, len(models))
	for i := range models {
		out[i] = models[i].toDomain()
	}
	return out, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	var m orderModel
	if err := r.db.WithContext(ctx).Preload("Client").First(&m, id).Error; err != nil {
		return nil, notFound(err, domain.ErrOrderNotFound)
	}
	return m.toDomain(), nil
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	m := toOrderModel(o)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	o.ID = m.ID
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, o *domain.Order) error {
	m := toOrderModel(o)
	res := r.db.WithContext(ctx).
		Model(&orderModel{ID: o.ID}).
		Select("client_id", "order_date", "total_amount", "status", "description", "quantity").
		Updates(m)
	if res.Error != nil {
		return fmt.Errorf("update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&orderModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	var rows []struct {
		Status string
		N      int64
	}
	err := r.db.WithContext(ctx).
		Model(&orderModel{}).
		Select("status, count(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	out := make(map[domain.OrderStatus]int64, len(rows))
	for _, row := range rows {
		out[domain.OrderStatus(row.Status)] = row.N
	}
	return out, nil
}

func (r *OrderRepository) Amounts(ctx context.Context, status domain.OrderStatus) ([]decimal.Decimal, error) {
	var amounts []money
	err := r.db.WithContext(ctx).
		Model(&orderModel{}).
		Where("status = ?", string(status)).
		Pluck("total_amount", &amounts).Error
	if err != nil {
		return nil, fmt.Errorf("pluck amounts: %w", err)
	}
	out := make([]decimal.Decimal, len(amounts))
	for i, a := range amounts {
		out[i] = a.Decimal
	}
	return out, nil
}

func (r *OrderRepository) OrderDatesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&orderModel{}).
		Where("order_date >= ? AND order_date < ?", from.UTC(), to.UTC()).
		Order("order_date asc").
		Pluck("order_date", &dates).Error
	if err != nil {
		return nil, fmt.Errorf("pluck order dates: %w", err)
	}
	for i := range dates {
		dates[i] = dates[i].UTC()
	}
	return dates, nil
}
