package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// SyncCounts reports how many records an ingestion run touched.
type SyncCounts struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// SyncResult is the outcome of a single-entity sync.
type SyncResult struct {
	Message string     `json:"message,omitempty"`
	Results SyncCounts `json:"results"`
}

// FullSyncResult is the outcome of a full sync, keyed by entity name.
type FullSyncResult struct {
	Message string                `json:"message,omitempty"`
	Results map[string]SyncCounts `json:"results"`
}

// EntitySyncState describes one entity's ingestion progress.
type EntitySyncState struct {
	Count    int64      `json:"count"`
	LastSync *time.Time `json:"lastSync"`
}

// IngestionStatus reports per-entity record counts and last sync times.
type IngestionStatus struct {
	Customers EntitySyncState `json:"customers"`
	Products  EntitySyncState `json:"products"`
	Orders    EntitySyncState `json:"orders"`
}

// SyncCustomers triggers a customer sync. full selects a complete resync
// instead of the incremental default.
func (c *Client) SyncCustomers(ctx context.Context, full bool) (*SyncResult, error) {
	return c.sync(ctx, syncCustomersPath, fullSyncQuery(full))
}

// SyncProducts triggers a product sync.
func (c *Client) SyncProducts(ctx context.Context, full bool) (*SyncResult, error) {
	return c.sync(ctx, syncProductsPath, fullSyncQuery(full))
}

// SyncOrders triggers an order sync, optionally filtered by order status
// ("any" when empty).
func (c *Client) SyncOrders(ctx context.Context, full bool, status string) (*SyncResult, error) {
	query := fullSyncQuery(full)
	if status == "" {
		status = "any"
	}
	query.Set("status", status)
	return c.sync(ctx, syncOrdersPath, query)
}

// FullSync resyncs every entity in one backend run.
func (c *Client) FullSync(ctx context.Context) (*FullSyncResult, error) {
	var result FullSyncResult
	if err := c.do(ctx, http.MethodPost, fullSyncPath, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// IngestionStatus reports the sync state of every entity.
func (c *Client) IngestionStatus(ctx context.Context) (*IngestionStatus, error) {
	var status IngestionStatus
	if err := c.do(ctx, http.MethodGet, ingestionStatusPath, nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) sync(ctx context.Context, path string, query url.Values) (*SyncResult, error) {
	var result SyncResult
	if err := c.do(ctx, http.MethodPost, path, query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func fullSyncQuery(full bool) url.Values {
	query := url.Values{}
	query.Set("full_sync", strconv.FormatBool(full))
	return query
}
