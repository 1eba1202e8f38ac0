package repository

import (
	"context"
	"time"

	"github.com/martijn/miniblog/internal/core/domain"
)

// UserRepository is the credential store. It is the only component that
// persists User records; session tokens are minted elsewhere and handed
// in for storage. Lookups return (nil, nil) when no record matches:
// absence is a normal result, not a failure.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindBySessionToken resolves a presented token to its owning user.
	// The lookup itself filters out records whose session_expiry is not
	// strictly after now (lazy expiry: expired rows are treated as
	// absent, never deleted at read time).
	FindBySessionToken(ctx context.Context, token string, now time.Time) (*domain.User, error)

	// Save upserts the record keyed on username.
	Save(ctx context.Context, user *domain.User) error

	Delete(ctx context.Context, username string) error
	List(ctx context.Context) ([]*domain.User, error)
}
