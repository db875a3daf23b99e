package apiclient

import (
	"context"
	"net/http"

	"github.com/storepulse/storepulse-cli/tenants"
)

// RegisterRequest creates a new tenant from a Shopify store connection.
type RegisterRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	ShopifyStoreURL    string `json:"shopifyStoreUrl"`
	ShopifyAccessToken string `json:"shopifyAccessToken"`
}

// LoginRequest identifies an existing tenant. There is no password; the
// backend matches the email and store URL pair.
type LoginRequest struct {
	Email           string `json:"email"`
	ShopifyStoreURL string `json:"shopifyStoreUrl"`
}

// AuthResponse is the payload of a successful login or registration.
type AuthResponse struct {
	Token  string          `json:"token"`
	Tenant *tenants.Tenant `json:"tenant"`
}

type verifyResponse struct {
	Tenant *tenants.Tenant `json:"tenant"`
}

// Register creates a tenant account. The returned token and tenant are NOT
// persisted here; committing the session is the session controller's job.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, registerPath, nil, req, &resp); err != nil {
		return nil, err
	}
	return validAuthResponse(&resp)
}

// Login authenticates an existing tenant. Persistence is left to the caller,
// same as Register.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, loginPath, nil, req, &resp); err != nil {
		return nil, err
	}
	return validAuthResponse(&resp)
}

// validAuthResponse rejects 2xx auth payloads missing the token or tenant,
// so the session layer never commits a half-formed session.
func validAuthResponse(resp *AuthResponse) (*AuthResponse, error) {
	if resp.Token == "" || resp.Tenant == nil {
		return nil, &APIError{Message: "malformed auth response: missing token or tenant"}
	}
	return resp, nil
}

// Verify checks the stored bearer token against the backend and returns the
// current server-side tenant record. Side-effect free on failure.
func (c *Client) Verify(ctx context.Context) (*tenants.Tenant, error) {
	var resp verifyResponse
	if err := c.do(ctx, http.MethodGet, verifyPath, nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Tenant == nil {
		return nil, &APIError{Message: "malformed verify response: missing tenant"}
	}
	return resp.Tenant, nil
}
