package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password string, role domain.Role) error
	loginFn    func(ctx context.Context, username, password string) (string, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password string, role domain.Role) error {
	return s.registerFn(ctx, username, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string, role domain.Role) error {
			if username != "alice" || password != "secret" || role != domain.RoleCustomer {
				t.Fatalf("unexpected args: %s %s %s", username, password, role)
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/api/v1/Auth/register", `{"username":"alice","password":"secret","role":"customer"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != msgRegistered {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string, role domain.Role) error {
			return domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/api/v1/Auth/register", `{"username":"bob","password":"x","role":"Admin"}`)
	_ = handler.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec.Body.String() != "El usuario ya existe." {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestAuthHandler_Register_UnknownRole(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string, role domain.Role) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/api/v1/Auth/register", `{"username":"bob","password":"x","role":"Root"}`)
	_ = handler.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string, role domain.Role) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	for _, body := range []string{"not-json", `{"username":"bob","role":"Admin"}`} {
		c, rec := postJSON(e, "/api/v1/Auth/register", body)
		_ = handler.Register(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestAuthHandler_Register_UnexpectedError(t *testing.T) {
	e := newTestEcho()
	boom := errors.New("db down")
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string, role domain.Role) error {
			return boom
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := postJSON(e, "/api/v1/Auth/register", `{"username":"bob","password":"x","role":"Admin"}`)
	if err := handler.Register(c); !errors.Is(err, boom) {
		t.Fatalf("expected error to propagate to the central handler, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/api/v1/Auth/login", `{"username":"alice","password":"secret"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "token123" {
		t.Fatalf("expected raw token body, got %q", rec.Body.String())
	}
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		body string
	}{
		{"unknown user", domain.ErrUserNotFound, "Usuario no encontrado."},
		{"wrong password", domain.ErrWrongPassword, "Contraseña incorrecta."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubAuthService{
				loginFn: func(ctx context.Context, username, password string) (string, error) {
					return "", tt.err
				},
			}
			handler := NewAuthHandler(stub)

			c, rec := postJSON(e, "/api/v1/Auth/login", `{"username":"alice","password":"bad"}`)
			_ = handler.Login(c)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if rec.Body.String() != tt.body {
				t.Fatalf("expected %q, got %q", tt.body, rec.Body.String())
			}
		})
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/api/v1/Auth/login", "{")
	_ = handler.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
