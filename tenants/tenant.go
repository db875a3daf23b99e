package tenants

import "time"

// Tenant represents a connected Shopify store account in the multi-tenant
// analytics platform. The record is owned by the backend; the client keeps a
// cached mirror of the last copy the server returned.
type Tenant struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	ShopifyStoreURL string    `json:"shopifyStoreUrl"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
