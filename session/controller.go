// Package session owns the client's authentication state: the single source
// of truth for whether a tenant is signed in, which tenant it is, and whether
// an auth operation is in flight. It mediates between the UI layer and the
// API client, and it is the only component that writes the credential store.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/storepulse/storepulse-cli/apiclient"
	"github.com/storepulse/storepulse-cli/credentials"
	"github.com/storepulse/storepulse-cli/notify"
	"github.com/storepulse/storepulse-cli/tenants"
)

// loginSurface is where session-ending events navigate to.
const loginSurface = "/login"

// API is the slice of the API client the controller depends on. The concrete
// *apiclient.Client satisfies it; tests substitute a fake.
type API interface {
	Login(ctx context.Context, req apiclient.LoginRequest) (*apiclient.AuthResponse, error)
	Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.AuthResponse, error)
	Verify(ctx context.Context) (*tenants.Tenant, error)

	// OnSessionInvalid registers the 401 cascade handler.
	OnSessionInvalid(fn func())
}

// Deps holds the controller's collaborators.
type Deps struct {
	API      API
	Store    credentials.Store
	Notifier notify.Notifier

	// Navigate performs the UI-level redirect on session-ending events.
	// Optional; headless consumers leave it nil.
	Navigate func(target string)
}

// Snapshot is a point-in-time copy of the authentication state.
type Snapshot struct {
	IsAuthenticated bool
	CurrentTenant   *tenants.Tenant
	Loading         bool
}

// Controller implements the session state machine: Anonymous and
// Authenticated, with a transient loading flag per operation.
//
// Auth operations (Initialize, Login, Register) are serialized by an
// operation mutex. Logout deliberately bypasses that mutex so it can never
// be blocked by an in-flight operation; instead it advances an epoch
// counter, and in-flight operations discard their result when the epoch
// moved under them. Logout always wins.
type Controller struct {
	deps Deps

	opLock sync.Mutex

	stateLock     sync.RWMutex
	authenticated bool
	tenant        *tenants.Tenant
	loading       bool
	epoch         uint64
}

// New creates a Controller and registers its 401 cascade with the API
// client. The controller starts Anonymous with loading set, mirroring a UI
// that shows a spinner until Initialize resolves.
func New(deps Deps) (*Controller, error) {
	if deps.API == nil {
		return nil, errors.New("[session.New] API client is required")
	}
	if deps.Store == nil {
		return nil, errors.New("[session.New] credential store is required")
	}
	if deps.Notifier == nil {
		return nil, errors.New("[session.New] notifier is required")
	}

	controller := &Controller{deps: deps, loading: true}
	deps.API.OnSessionInvalid(controller.sessionInvalidated)
	return controller, nil
}

// Initialize restores a persisted session, once, at process start. With a
// stored token and tenant it verifies the token against the backend and
// refreshes the cached tenant; on any failure it falls back to a silent
// logout. With nothing stored it simply lands Anonymous. Loading is cleared
// on every path.
func (c *Controller) Initialize(ctx context.Context) {
	c.opLock.Lock()
	defer c.opLock.Unlock()
	defer c.setLoading(false)

	stored, err := c.deps.Store.Load()
	if err != nil {
		if !errors.Is(err, credentials.ErrNotFound) {
			log.Warn().Err(err).Msg("credential store unreadable, starting signed out")
		}
		c.setAnonymous()
		return
	}
	log.Debug().Str("tenant", stored.Tenant.Name).Msg("restoring persisted session")

	epoch := c.currentEpoch()
	tenant, err := c.deps.API.Verify(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("auth check failed")
		c.clearSession(false)
		return
	}

	if !c.commit(epoch, tenant) {
		return
	}
	if err := c.deps.Store.SaveTenant(tenant); err != nil {
		log.Warn().Err(err).Msg("failed to refresh cached tenant")
	}
}

// Login authenticates with email and store URL. On success the controller
// commits the session (it alone persists token and tenant) and emits a
// welcome notification; on failure the state stays Anonymous and the error
// is wrapped in the returned Result.
func (c *Controller) Login(ctx context.Context, creds apiclient.LoginRequest) Result {
	c.opLock.Lock()
	defer c.opLock.Unlock()
	c.setLoading(true)
	defer c.setLoading(false)

	epoch := c.currentEpoch()
	resp, err := c.deps.API.Login(ctx, creds)
	if err != nil {
		log.Debug().Err(err).Msg("login failed")
		c.deps.Notifier.Error(messageOr(err, "Login failed. Please try again."))
		return failed(err)
	}

	if !c.commitAndPersist(epoch, resp) {
		return failed(ErrSuperseded)
	}

	c.deps.Notifier.Success(fmt.Sprintf("Welcome back, %s!", resp.Tenant.Name))
	return ok(resp)
}

// Register creates a tenant account; the contract is identical to Login
// apart from the welcome notification.
func (c *Controller) Register(ctx context.Context, data apiclient.RegisterRequest) Result {
	c.opLock.Lock()
	defer c.opLock.Unlock()
	c.setLoading(true)
	defer c.setLoading(false)

	epoch := c.currentEpoch()
	resp, err := c.deps.API.Register(ctx, data)
	if err != nil {
		log.Debug().Err(err).Msg("registration failed")
		c.deps.Notifier.Error(messageOr(err, "Registration failed. Please try again."))
		return failed(err)
	}

	if !c.commitAndPersist(epoch, resp) {
		return failed(ErrSuperseded)
	}

	c.deps.Notifier.Success(fmt.Sprintf("Welcome, %s! Your account has been created.", resp.Tenant.Name))
	return ok(resp)
}

// Logout unconditionally transitions to Anonymous: clears state and
// persisted credentials, navigates to the login surface, and notifies.
// Safe from any state and idempotent; it never fails.
func (c *Controller) Logout() {
	c.clearSession(true)
	c.deps.Notifier.Success("Logged out successfully")
}

// UpdateTenantData replaces the current tenant and its persisted cache after
// an out-of-band profile edit. Authentication state is unchanged; calls in
// the Anonymous state are ignored to keep the authenticated-implies-tenant
// invariant intact.
func (c *Controller) UpdateTenantData(tenant *tenants.Tenant) {
	c.stateLock.Lock()
	if !c.authenticated || tenant == nil {
		c.stateLock.Unlock()
		return
	}
	c.tenant = tenant
	c.stateLock.Unlock()

	if err := c.deps.Store.SaveTenant(tenant); err != nil {
		log.Warn().Err(err).Msg("failed to persist updated tenant")
	}
}

// State returns a snapshot of the current authentication state.
func (c *Controller) State() Snapshot {
	c.stateLock.RLock()
	defer c.stateLock.RUnlock()
	return Snapshot{
		IsAuthenticated: c.authenticated,
		CurrentTenant:   c.tenant,
		Loading:         c.loading,
	}
}

// sessionInvalidated is the 401 cascade: any request that comes back
// unauthorized ends the session, regardless of endpoint. The "session
// expired" notification is emitted by the API client before this runs.
func (c *Controller) sessionInvalidated() {
	c.clearSession(true)
}

// clearSession performs the Anonymous transition: bump the epoch so any
// in-flight operation discards its result, clear in-memory state, wipe the
// store, and optionally navigate to the login surface. It takes only the
// state lock, never the operation lock, so it cannot be blocked by a pending
// login.
func (c *Controller) clearSession(navigate bool) {
	c.stateLock.Lock()
	c.epoch++
	c.authenticated = false
	c.tenant = nil
	c.stateLock.Unlock()

	if err := c.deps.Store.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear stored credentials")
	}
	if navigate && c.deps.Navigate != nil {
		c.deps.Navigate(loginSurface)
	}
}

// commitAndPersist applies a successful auth response and, as the sole
// writer, persists token and tenant together. Returns false when a logout
// raced the operation and the result was discarded.
func (c *Controller) commitAndPersist(epoch uint64, resp *apiclient.AuthResponse) bool {
	if !c.commit(epoch, resp.Tenant) {
		return false
	}
	err := c.deps.Store.Save(&credentials.Credentials{Token: resp.Token, Tenant: resp.Tenant})
	if err != nil {
		log.Warn().Err(err).Msg("failed to persist session credentials")
	}
	return true
}

func (c *Controller) commit(epoch uint64, tenant *tenants.Tenant) bool {
	c.stateLock.Lock()
	defer c.stateLock.Unlock()
	if c.epoch != epoch {
		return false
	}
	c.authenticated = true
	c.tenant = tenant
	return true
}

func (c *Controller) setAnonymous() {
	c.stateLock.Lock()
	defer c.stateLock.Unlock()
	c.authenticated = false
	c.tenant = nil
}

func (c *Controller) setLoading(loading bool) {
	c.stateLock.Lock()
	defer c.stateLock.Unlock()
	c.loading = loading
}

func (c *Controller) currentEpoch() uint64 {
	c.stateLock.RLock()
	defer c.stateLock.RUnlock()
	return c.epoch
}

// messageOr extracts the server-provided message from a normalized API
// error, falling back to a generic message for transport failures without
// one.
func messageOr(err error, fallback string) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
