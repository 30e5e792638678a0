package gormdb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
)

// ClientRepository stores clients.
type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	var models []clientModel
	if err := r.db.WithContext(ctx).Order("id asc").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	out := make([]*domain.Client, len(models))
	for i := range models {
		out[i] = models[i].toDomain()
	}
	return out, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	var m clientModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, domain.ErrClientNotFound)
	}
	return m.toDomain(), nil
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	m := toClientModel(c)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	c.ID = m.ID
	return nil
}

func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) error {
	m := toClientModel(c)
	res := r.db.WithContext(ctx).
		Model(&clientModel{ID: c.ID}).
		Select("name", "email", "phone", "status", "created_at").
		Updates(m)
	if res.Error != nil {
		return fmt.Errorf("update client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&clientModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) CountByStatus(ctx context.Context, status domain.ClientStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&clientModel{}).Where("status = ?", string(status)).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}
