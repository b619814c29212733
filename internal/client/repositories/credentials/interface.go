package credentials

import (
	"context"

	"github.com/avdeyev/shelfkeeper/internal/client/models"
)

// Repository persists the two credential entries that survive a restart:
// the bearer token and the serialized user record. Only the session store
// writes through this interface.
type Repository interface {
	// Token returns the persisted bearer token, or "" when none is stored.
	Token(ctx context.Context) (string, error)

	// User returns the persisted user record, or nil when none is stored
	// or the stored record does not decode.
	User(ctx context.Context) (*models.User, error)

	// SaveSession stores token and user together. Either both entries are
	// written or neither is; storage never holds a token without its user.
	SaveSession(ctx context.Context, token string, user *models.User) error

	// SaveUser rewrites only the user record, keeping the token as is.
	SaveUser(ctx context.Context, user *models.User) error

	// Clear removes all stored entries. Clearing empty storage is not an
	// error.
	Clear(ctx context.Context) error
}
