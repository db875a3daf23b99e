package apiclient

import (
	"context"
	"net/http"

	"github.com/storepulse/storepulse-cli/tenants"
)

// ProfileUpdate carries the editable identity fields.
type ProfileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ShopifyCredentialsUpdate rotates the stored Shopify API credentials.
type ShopifyCredentialsUpdate struct {
	ShopifyAccessToken string `json:"shopifyAccessToken"`
	ShopifyAPIKey      string `json:"shopifyApiKey,omitempty"`
}

// TenantStats are the headline counters shown on the dashboard.
type TenantStats struct {
	Customers    int64   `json:"customers"`
	Products     int64   `json:"products"`
	Orders       int64   `json:"orders"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type profileResponse struct {
	Tenant *tenants.Tenant `json:"tenant"`
}

// Profile fetches the current tenant record.
func (c *Client) Profile(ctx context.Context) (*tenants.Tenant, error) {
	var resp profileResponse
	if err := c.do(ctx, http.MethodGet, profilePath, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tenant, nil
}

// UpdateProfile saves identity changes and returns the fresh tenant record.
// The caller refreshes the session cache via the controller's
// UpdateTenantData, keeping the controller the only storage writer.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*tenants.Tenant, error) {
	var resp profileResponse
	if err := c.do(ctx, http.MethodPut, profilePath, nil, update, &resp); err != nil {
		return nil, err
	}
	return resp.Tenant, nil
}

// UpdateShopifyCredentials rotates the Shopify API credentials on the backend.
func (c *Client) UpdateShopifyCredentials(ctx context.Context, update ShopifyCredentialsUpdate) error {
	return c.do(ctx, http.MethodPut, shopifyCredentialsPath, nil, update, nil)
}

// Stats fetches the tenant's headline counters.
func (c *Client) Stats(ctx context.Context) (*TenantStats, error) {
	var stats TenantStats
	if err := c.do(ctx, http.MethodGet, statsPath, nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
