// Package auth implements email/password identity and the cookie session
// that carries the signed-in user between requests.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/donaldgifford/devlog/internal/store"
	domain "github.com/donaldgifford/devlog/pkg/types"
)

// DefaultMinPasswordLength is used when NewService is given a non-positive
// minimum.
const DefaultMinPasswordLength = 8

var (
	// ErrInvalidEmail is returned when an address does not parse.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrWeakPassword is returned when a password is shorter than the minimum.
	ErrWeakPassword = errors.New("password too short")
	// ErrEmailTaken is returned by SignUp when the address is registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned by Login for an unknown address or a
	// wrong password. The two cases are indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserStore is the subset of store.Store the identity service needs.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// Service signs users up and verifies their credentials.
type Service struct {
	users       UserStore
	minPassword int
	cost        int
}

// NewService creates a Service backed by users.
func NewService(users UserStore, minPasswordLength int) *Service {
	if minPasswordLength <= 0 {
		minPasswordLength = DefaultMinPasswordLength
	}
	return &Service{
		users:       users,
		minPassword: minPasswordLength,
		cost:        bcrypt.DefaultCost,
	}
}

// MinPasswordLength returns the configured minimum password length in runes.
func (s *Service) MinPasswordLength() int {
	return s.minPassword
}

// SignUp registers a new user and returns it with its assigned ID.
func (s *Service) SignUp(ctx context.Context, email, password string) (*domain.User, error) {
	addr, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(password) < s.minPassword {
		return nil, fmt.Errorf("%w: need at least %d characters", ErrWeakPassword, s.minPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &domain.User{Email: addr, PasswordHash: string(hash)}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// Login returns the user matching email when password is correct.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	addr, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// User loads a user by ID.
func (s *Service) User(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetUserByID(ctx, id)
}

func normalizeEmail(raw string) (string, error) {
	addr := strings.ToLower(strings.TrimSpace(raw))
	if addr == "" {
		return "", ErrInvalidEmail
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return "", ErrInvalidEmail
	}
	return addr, nil
}
