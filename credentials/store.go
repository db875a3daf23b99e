package credentials

import (
	"errors"

	"github.com/storepulse/storepulse-cli/tenants"
)

// ErrNotFound is returned by Load and Token when no credentials are stored.
var ErrNotFound = errors.New("no stored credentials")

// Store defines the interface for persisting session credentials across
// restarts. Implementations must make each key write atomic (no partially
// written token), but no transactional guarantee across token and tenant is
// required; the session controller re-establishes consistency on startup.
type Store interface {
	// Save persists the token and tenant together.
	Save(creds *Credentials) error

	// SaveTenant rewrites only the cached tenant, leaving the token as is.
	// Used after profile updates and successful verification.
	SaveTenant(tenant *tenants.Tenant) error

	// Load retrieves the stored credentials. Returns ErrNotFound when
	// either the token or the tenant is absent.
	Load() (*Credentials, error)

	// Token retrieves the stored bearer token, or ErrNotFound.
	Token() (string, error)

	// Clear removes all stored credentials. Clearing an empty store is a
	// no-op, so repeated logouts are safe.
	Clear() error
}
