package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/martijn/miniblog/internal/core/domain"
	"github.com/martijn/miniblog/internal/core/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultSessionTTL = 900 * time.Second
	BcryptCost        = 10
)

// LoginOutcome distinguishes a first-time auto-registration from a
// returning login. Both carry a fresh session.
type LoginOutcome int

const (
	OutcomeLoggedIn LoginOutcome = iota
	OutcomeRegistered
)

// AuthService owns the session lifecycle: issuance on login, resolution
// of presented tokens, and invalidation on logout. Session state lives
// on the user record; only this service and the repository touch it.
type AuthService struct {
	userRepo   repository.UserRepository
	sessionTTL time.Duration
	bcryptCost int
	now        func() time.Time
}

type AuthOption func(*AuthService)

// WithClock replaces the wall-clock source. Expiry-boundary tests use
// this to make the 900s window deterministic.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) {
		s.now = now
	}
}

func WithSessionTTL(ttl time.Duration) AuthOption {
	return func(s *AuthService) {
		s.sessionTTL = ttl
	}
}

func WithBcryptCost(cost int) AuthOption {
	return func(s *AuthService) {
		s.bcryptCost = cost
	}
}

func NewAuthService(userRepo repository.UserRepository, opts ...AuthOption) *AuthService {
	s := &AuthService{
		userRepo:   userRepo,
		sessionTTL: DefaultSessionTTL,
		bcryptCost: BcryptCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Login authenticates the username/password pair and issues a fresh
// session token.
//
// An unknown username is registered on the spot and logged in
// (OutcomeRegistered). That means a typo in the username during first
// use silently creates a new account instead of failing; a sharp edge
// of the auto-registration design, kept as an explicit branch here so
// it stays visible and testable.
//
// A known username with a wrong password returns ErrInvalidCredentials
// and mutates nothing. A known username with the right password gets
// its token and expiry rotated (OutcomeLoggedIn).
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, LoginOutcome, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, 0, err
	}

	outcome := OutcomeLoggedIn
	if user == nil {
		hash, err := s.HashPassword(password)
		if err != nil {
			return nil, 0, err
		}
		user = domain.NewUser(username, hash)
		outcome = OutcomeRegistered
	} else if !s.VerifyPassword(password, user.Password) {
		return nil, 0, ErrInvalidCredentials
	}

	user.StartSession(uuid.New().String(), s.now().Add(s.sessionTTL))

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, 0, err
	}
	return user, outcome, nil
}

// Resolve maps a presented session token to its owning user. An empty
// token resolves to no user; so does an unknown or expired one. The
// expiry check happens in the store query and never mutates the record.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}
	return s.userRepo.FindBySessionToken(ctx, token, s.now())
}

// Logout clears the stored session token and expiry. Idempotent: an
// identity with no active session, or one already logged out, succeeds
// without error.
func (s *AuthService) Logout(ctx context.Context, username string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	user.EndSession()
	return s.userRepo.Save(ctx, user)
}
