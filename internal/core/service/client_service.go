package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
	"github.com/ordersdesk/ordersdesk/internal/core/ports"
)

type ClientService struct {
	clients ports.ClientRepository
	idem    ports.IdempotencyStore
	logger  zerolog.Logger
	now     func() time.Time
}

// NewClientService wires the client use cases. idem may be nil.
func NewClientService(clients ports.ClientRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *ClientService {
	if idem == nil {
		idem = noopIdempotency{}
	}
	return &ClientService{clients: clients, idem: idem, logger: logger, now: time.Now}
}

func (s *ClientService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	return s.clients.List(ctx)
}

func (s *ClientService) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	return s.clients.FindByID(ctx, id)
}

func (s *ClientService) CreateClient(ctx context.Context, in ports.ClientInput, idempotencyKey string) (*ports.CreateResult[*domain.Client], error) {
	if idempotencyKey != "" {
		id, ok, err := s.idem.Lookup(ctx, scopeClients, idempotencyKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", idempotencyKey).Msg("idempotency lookup failed, creating anyway")
		} else if ok {
			if existing, err := s.clients.FindByID(ctx, id); err == nil {
				s.logger.Info().Str("idempotency_key", idempotencyKey).Int64("client_id", id).Msg("idempotent replay")
				return &ports.CreateResult[*domain.Client]{Value: existing, Replayed: true}, nil
			}
		}
	}

	client, err := buildClient(in)
	if err != nil {
		return nil, err
	}
	client.CreatedAt = s.now().UTC()

	if err := s.clients.Create(ctx, client); err != nil {
		s.logger.Error().Err(err).Msg("failed to create client")
		return nil, fmt.Errorf("create client: %w", err)
	}

	if idempotencyKey != "" {
		if err := s.idem.Remember(ctx, scopeClients, idempotencyKey, client.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", idempotencyKey).Msg("failed to remember idempotency key")
		}
	}

	s.logger.Info().Int64("client_id", client.ID).Msg("client created")
	return &ports.CreateResult[*domain.Client]{Value: client}, nil
}

// UpdateClient replaces the mutable fields of a client. CreatedAt is kept.
func (s *ClientService) UpdateClient(ctx context.Context, id int64, in ports.ClientInput) error {
	if id != in.ID {
		return domain.ErrIDMismatch
	}

	client, err := buildClient(in)
	if err != nil {
		return err
	}

	current, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return err
	}
	client.CreatedAt = current.CreatedAt

	if err := s.clients.Update(ctx, client); err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return err
		}
		return fmt.Errorf("update client: %w", err)
	}

	s.logger.Info().Int64("client_id", id).Msg("client updated")
	return nil
}

// DeleteClient removes a client. Orders that reference it are left in place.
func (s *ClientService) DeleteClient(ctx context.Context, id int64) error {
	if err := s.clients.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return err
		}
		return fmt.Errorf("delete client: %w", err)
	}
	s.logger.Info().Int64("client_id", id).Msg("client deleted")
	return nil
}

func buildClient(in ports.ClientInput) (*domain.Client, error) {
	status, err := domain.ParseClientStatus(in.Status)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	return &domain.Client{
		ID:     in.ID,
		Name:   name,
		Email:  strings.TrimSpace(in.Email),
		Phone:  strings.TrimSpace(in.Phone),
		Status: status,
	}, nil
}
