package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
	"github.com/ordersdesk/ordersdesk/internal/core/ports"
)

type stubClientService struct {
	listFn   func(ctx context.Context) ([]*domain.Client, error)
	getFn    func(ctx context.Context, id int64) (*domain.Client, error)
	createFn func(ctx context.Context, in ports.ClientInput, key string) (*ports.CreateResult[*domain.Client], error)
	updateFn func(ctx context.Context, id int64, in ports.ClientInput) error
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubClientService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	return s.listFn(ctx)
}

func (s *stubClientService) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	return s.getFn(ctx, id)
}

func (s *stubClientService) CreateClient(ctx context.Context, in ports.ClientInput, key string) (*ports.CreateResult[*domain.Client], error) {
	return s.createFn(ctx, in, key)
}

func (s *stubClientService) UpdateClient(ctx context.Context, id int64, in ports.ClientInput) error {
	return s.updateFn(ctx, id, in)
}

func (s *stubClientService) DeleteClient(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func TestClientHandler_Create(t *testing.T) {
	e := newTestEcho()
	handler := NewClientHandler(&stubClientService{
		createFn: func(ctx context.Context, in ports.ClientInput, key string) (*ports.CreateResult[*domain.Client], error) {
			if in.Name != "Acme" || in.Email != "ops@acme.test" {
				t.Fatalf("unexpected input %+v", in)
			}
			return &ports.CreateResult[*domain.Client]{Value: &domain.Client{
				ID: 1, Name: in.Name, Email: in.Email, Status: domain.ClientActive, CreatedAt: sampleDate,
			}}, nil
		},
	})

	c, rec := newRequest(e, http.MethodPost, "/api/v1/Clients", `{"name":"Acme","email":"ops@acme.test"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderLocation) != "/api/v1/Clients" {
		t.Fatalf("unexpected Location %q", rec.Header().Get(echo.HeaderLocation))
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(1) || resp["status"] != "Active" || resp["createdAt"] != "2026-10-19T09:00:00Z" {
		t.Fatalf("unexpected client payload %+v", resp)
	}
}

func TestClientHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{"email":"a@b.test"}`, "name is required"},
		{"bad email", `{"name":"Acme","email":"nope"}`, "email must be a valid email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			handler := NewClientHandler(&stubClientService{})

			c, _ := newRequest(e, http.MethodPost, "/api/v1/Clients", tt.body)
			err := handler.Create(c)

			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 HTTPError, got %v", err)
			}
			if he.Message != tt.want {
				t.Fatalf("expected %q, got %v", tt.want, he.Message)
			}
		})
	}
}

func TestClientHandler_GetNotFound(t *testing.T) {
	e := newTestEcho()
	handler := NewClientHandler(&stubClientService{
		getFn: func(ctx context.Context, id int64) (*domain.Client, error) {
			return nil, domain.ErrClientNotFound
		},
	})

	c, _ := newRequest(e, http.MethodGet, "/api/v1/Clients/4", "")
	c.SetParamNames("id")
	c.SetParamValues("4")
	if err := handler.Get(c); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestClientHandler_UpdateAndDelete(t *testing.T) {
	e := newTestEcho()
	var updated, deleted int64
	handler := NewClientHandler(&stubClientService{
		updateFn: func(ctx context.Context, id int64, in ports.ClientInput) error {
			if in.Status != "Inactive" {
				t.Fatalf("unexpected status %q", in.Status)
			}
			updated = id
			return nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	})

	c, rec := newRequest(e, http.MethodPut, "/api/v1/Clients/2", `{"id":2,"name":"Acme","status":"Inactive"}`)
	c.SetParamNames("id")
	c.SetParamValues("2")
	if err := handler.Update(c); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if rec.Code != http.StatusNoContent || updated != 2 {
		t.Fatalf("expected 204 for client 2, got %d / %d", rec.Code, updated)
	}

	c, rec = newRequest(e, http.MethodDelete, "/api/v1/Clients/2", "")
	c.SetParamNames("id")
	c.SetParamValues("2")
	if err := handler.Delete(c); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != 2 {
		t.Fatalf("expected 204 for client 2, got %d / %d", rec.Code, deleted)
	}
}
