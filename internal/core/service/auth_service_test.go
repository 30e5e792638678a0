package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
	"github.com/ordersdesk/ordersdesk/internal/pkg/jwtutil"
)

type stubAuthRepo struct {
	users  map[string]*domain.User
	nextID int64
	// skipExists makes ExistsByUsername lie, simulating a concurrent
	// registration that slipped past the read-then-write check.
	skipExists bool
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	if r.skipExists {
		return false, nil
	}
	_, ok := r.users[username]
	return ok, nil
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.users[copy.Username] = copy
	return cloneUser(copy), nil
}

var testJWTConfig = jwtutil.Config{
	Key:      strings.Repeat("s", jwtutil.MinKeyLength),
	Issuer:   "ordersdesk-auth",
	Audience: "ordersdesk-app",
}

func newTestAuthService(t *testing.T) (*AuthService, *stubAuthRepo, *jwtutil.Manager) {
	t.Helper()
	tokens, err := jwtutil.NewManager(testJWTConfig)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	repo := newStubAuthRepo()
	return NewAuthService(repo, tokens, zerolog.Nop()), repo, tokens
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)

	if err := svc.Register(context.Background(), "alice", "pass123", domain.RoleCustomer); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	user := repo.users["alice"]
	if user == nil {
		t.Fatalf("expected user to be stored")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	if err := svc.Register(context.Background(), "", "pass", domain.RoleCustomer); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := svc.Register(context.Background(), "bob", "", domain.RoleCustomer); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
	if err := svc.Register(context.Background(), "bob", "pass", domain.Role("Root")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad role, got %v", err)
	}
	if err := svc.Register(context.Background(), "bob", strings.Repeat("x", 73), domain.RoleCustomer); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a 73-byte password, got %v", err)
	}
	if err := svc.Register(context.Background(), "bob", strings.Repeat("x", 72), domain.RoleCustomer); err != nil {
		t.Fatalf("a 72-byte password must be accepted, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	if err := svc.Register(context.Background(), "bob", "pass", domain.RoleCustomer); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := svc.Register(context.Background(), "bob", "pass2", domain.RoleAdmin); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_ConstraintViolationIsConflict(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)

	if err := svc.Register(context.Background(), "bob", "pass", domain.RoleCustomer); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	repo.skipExists = true
	if err := svc.Register(context.Background(), "bob", "pass", domain.RoleCustomer); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists from constraint, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, tokens := newTestAuthService(t)

	if err := svc.Register(context.Background(), "carol", "s3cret", domain.RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims, err := tokens.Validate(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Role != string(domain.RoleAdmin) {
		t.Fatalf("expected role %s, got %v", domain.RoleAdmin, claims.Role)
	}
	if claims.Name != "carol" {
		t.Fatalf("expected name claim carol, got %v", claims.Name)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_ = svc.Register(context.Background(), "dave", "goodpass", domain.RoleCustomer)
	_, err := svc.Login(context.Background(), "dave", "badpass")
	if !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected wrong password to be an invalid credentials error")
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "ghost", "pass")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected unknown user to be an invalid credentials error")
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)

	created, err := svc.EnsureAdmin(context.Background(), "Admin1234!")
	if err != nil || !created {
		t.Fatalf("expected admin to be created, got created=%v err=%v", created, err)
	}
	if repo.users[domain.AdminUsername].Role != domain.RoleAdmin {
		t.Fatalf("expected admin role")
	}

	created, err = svc.EnsureAdmin(context.Background(), "other")
	if err != nil || created {
		t.Fatalf("expected second call to be a no-op, got created=%v err=%v", created, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.users[domain.AdminUsername].PasswordHash), []byte("Admin1234!")); err != nil {
		t.Fatalf("admin password must not change on second call")
	}
}
