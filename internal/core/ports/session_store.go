package ports

import (
	"context"

	"github.com/rekaindo/rekatrack/internal/core/domain"
)

// SessionStore persists the authenticated session in durable local
// key-value storage. Reads are synchronous from the caller's point of view;
// last-writer-wins is sufficient.
type SessionStore interface {
	// Get returns the stored session and whether a credential is present.
	Get(ctx context.Context) (domain.Session, bool, error)

	// Set stores the token together with the cached user, role name and
	// division name.
	Set(ctx context.Context, session domain.Session) error

	// Clear removes token, user, role and division atomically from the
	// caller's perspective. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error

	// ClearToken removes only the credential, leaving cached profile data in
	// place. Used by the gateway's 401 handling.
	ClearToken(ctx context.Context) error
}
