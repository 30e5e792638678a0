package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
	"github.com/ordersdesk/ordersdesk/internal/core/ports"
)

// passwordCost is fixed; callers cannot tune it per request.
const passwordCost = bcrypt.DefaultCost

// maxPasswordBytes is the longest input bcrypt will hash.
const maxPasswordBytes = 72

// TokenIssuer abstracts the token signer (jwtutil.Manager).
type TokenIssuer interface {
	Generate(username, role string) (string, error)
}

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.AuthRepository
	tokens TokenIssuer
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(repo ports.AuthRepository, tokens TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, username, password string, role domain.Role) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
	}
	if _, err := domain.ParseRole(string(role)); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if exists {
		return domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.now().UTC(),
	}
	// A concurrent registration can pass the check above; the store's unique
	// index turns the loser into ErrUserExists.
	if _, err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("username", username).Str("role", string(role)).Msg("user registered")
	return nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrWrongPassword
	}

	token, err := s.tokens.Generate(user.Username, string(user.Role))
	if err != nil {
		return "", fmt.Errorf("login: sign token: %w", err)
	}

	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return token, nil
}

// EnsureAdmin creates the bootstrap admin account unless it already exists.
// It reports whether a user was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, password string) (bool, error) {
	if password == "" {
		return false, fmt.Errorf("%w: admin password is empty", domain.ErrInvalidInput)
	}
	err := s.Register(ctx, domain.AdminUsername, password, domain.RoleAdmin)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrUserExists):
		return false, nil
	default:
		return false, fmt.Errorf("ensure admin: %w", err)
	}
}
