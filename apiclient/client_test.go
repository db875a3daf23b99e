package apiclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/storepulse/storepulse-cli/apiclient"
	"github.com/storepulse/storepulse-cli/credentials"
	"github.com/storepulse/storepulse-cli/credentials/repofakes"
	"github.com/storepulse/storepulse-cli/notify/notifyfakes"
	"github.com/storepulse/storepulse-cli/tenants"
	"github.com/stretchr/testify/require"
)

const testToken = "bearer-token-1"

type testFixture struct {
	router   *chi.Mux
	server   *httptest.Server
	store    *repofakes.FakeStore
	notifier *notifyfakes.Recorder
	client   *apiclient.Client
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		router:   chi.NewRouter(),
		store:    repofakes.NewFakeStore(),
		notifier: notifyfakes.NewRecorder(),
	}
	f.server = httptest.NewServer(f.router)
	t.Cleanup(f.server.Close)

	client, err := apiclient.New(f.server.URL, f.store, f.notifier)
	require.NoError(t, err)
	f.client = client
	return f
}

func (f *testFixture) saveToken(t *testing.T) {
	t.Helper()
	err := f.store.Save(&credentials.Credentials{Token: testToken, Tenant: &tenants.Tenant{Name: "Acme"}})
	require.NoError(t, err)
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := apiclient.New("", repofakes.NewFakeStore(), notifyfakes.NewRecorder())
	require.Error(t, err)

	_, err = apiclient.New("http://localhost", nil, notifyfakes.NewRecorder())
	require.Error(t, err)

	_, err = apiclient.New("http://localhost", repofakes.NewFakeStore(), nil)
	require.Error(t, err)
}

func TestLoginReturnsPayloadWithoutPersisting(t *testing.T) {
	f := setupTestFixture(t)
	f.router.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"t1","tenant":{"id":"1","name":"Y Store"}}`))
	})

	resp, err := f.client.Login(context.Background(), apiclient.LoginRequest{
		Email:           "x@y.com",
		ShopifyStoreURL: "https://y.myshopify.com",
	})
	require.NoError(t, err)
	require.Equal(t, "t1", resp.Token)
	require.Equal(t, "Y Store", resp.Tenant.Name)

	// persistence belongs to the session controller, not the client
	_, err = f.store.Token()
	require.ErrorIs(t, err, credentials.ErrNotFound)
}

func TestBearerTokenInjected(t *testing.T) {
	f := setupTestFixture(t)
	f.saveToken(t)

	var gotAuth, gotRequestID string
	f.router.Get("/tenant/stats", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"customers":10,"products":5,"orders":20,"totalRevenue":999.5}`))
	})

	stats, err := f.client.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer "+testToken, gotAuth)
	require.NotEmpty(t, gotRequestID)
	require.Equal(t, int64(10), stats.Customers)
	require.Equal(t, 999.5, stats.TotalRevenue)
}

func TestNoAuthHeaderWhenLoggedOut(t *testing.T) {
	f := setupTestFixture(t)

	var gotAuth string
	f.router.Get("/insights/summary", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	_, err := f.client.Summary(context.Background())
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestUnauthorizedFiresSessionInvalidHandler(t *testing.T) {
	f := setupTestFixture(t)
	f.saveToken(t)
	f.router.Get("/tenant/stats", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	})

	var invalidated bool
	f.client.OnSessionInvalid(func() { invalidated = true })

	_, err := f.client.Stats(context.Background())
	require.Error(t, err)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.True(t, apiErr.IsUnauthorized())
	require.Equal(t, "token expired", apiErr.Message)

	require.True(t, invalidated)
	require.Len(t, f.notifier.Errors(), 1)
	require.Contains(t, f.notifier.Errors()[0], "Session expired")
}

func TestForbiddenNotifiesWithoutCascade(t *testing.T) {
	f := setupTestFixture(t)
	f.router.Post("/ingestion/full-sync", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"plan does not allow full sync"}`))
	})

	var invalidated bool
	f.client.OnSessionInvalid(func() { invalidated = true })

	_, err := f.client.FullSync(context.Background())
	require.Error(t, err)
	require.False(t, invalidated)
	require.Len(t, f.notifier.Errors(), 1)
	require.Contains(t, f.notifier.Errors()[0], "Access denied")
}

func TestServerErrorNotifies(t *testing.T) {
	f := setupTestFixture(t)
	f.router.Get("/insights/summary", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := f.client.Summary(context.Background())
	require.Error(t, err)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
	// no JSON body, so the message falls back to the status text
	require.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)

	require.Len(t, f.notifier.Errors(), 1)
	require.Contains(t, f.notifier.Errors()[0], "Server error")
}

func TestValidationErrorCarriesFieldDetails(t *testing.T) {
	f := setupTestFixture(t)
	f.router.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"validation failed","details":[{"param":"email","msg":"invalid"}]}`))
	})

	_, err := f.client.Login(context.Background(), apiclient.LoginRequest{Email: "nope"})
	require.Error(t, err)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	require.Len(t, apiErr.Details, 1)
	require.Equal(t, "email", apiErr.Details[0].Param)
	require.Equal(t, "invalid", apiErr.Details[0].Msg)

	// validation errors carry no generic notification; the form owns messaging
	require.Empty(t, f.notifier.Errors())
}

func TestOtherClientErrorsPropagateSilently(t *testing.T) {
	f := setupTestFixture(t)
	f.router.Get("/tenant/profile", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no such tenant"}`))
	})

	_, err := f.client.Profile(context.Background())
	require.Error(t, err)
	require.Empty(t, f.notifier.Errors())
	require.Empty(t, f.notifier.Successes())
}

func TestSyncOrdersQueryParams(t *testing.T) {
	f := setupTestFixture(t)

	var gotQuery map[string][]string
	f.router.Post("/ingestion/orders", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"results":{"created":3,"updated":7}}`))
	})

	result, err := f.client.SyncOrders(context.Background(), true, "")
	require.NoError(t, err)
	require.Equal(t, 3, result.Results.Created)
	require.Equal(t, 7, result.Results.Updated)
	require.Equal(t, []string{"true"}, gotQuery["full_sync"])
	require.Equal(t, []string{"any"}, gotQuery["status"])
}

func TestInsightsQueryParamsOmitEmpty(t *testing.T) {
	f := setupTestFixture(t)

	var gotQuery map[string][]string
	f.router.Get("/insights/top-customers", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[{"id":"1","firstName":"Sarah","periodSpend":1245.8}]`))
	})

	customers, err := f.client.TopCustomers(context.Background(), apiclient.TopCustomersParams{Limit: 5})
	require.NoError(t, err)
	require.Len(t, customers, 1)
	require.Equal(t, "Sarah", customers[0].FirstName)
	require.Equal(t, []string{"5"}, gotQuery["limit"])
	require.NotContains(t, gotQuery, "period")
}

func TestVerifyReturnsTenant(t *testing.T) {
	f := setupTestFixture(t)
	f.saveToken(t)
	f.router.Get("/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tenant":{"id":"1","name":"Acme","email":"a@acme.com"}}`))
	})

	tenant, err := f.client.Verify(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Acme", tenant.Name)
	require.Equal(t, "a@acme.com", tenant.Email)
}

func TestTransportFailureNormalized(t *testing.T) {
	f := setupTestFixture(t)
	f.server.Close()

	_, err := f.client.Verify(context.Background())
	require.Error(t, err)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Zero(t, apiErr.Status)
	require.NotEmpty(t, apiErr.Message)
	// transport failures carry no generic notification
	require.Empty(t, f.notifier.Errors())
}

func TestIngestionStatusDecoding(t *testing.T) {
	f := setupTestFixture(t)
	f.router.Get("/ingestion/status", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"customers":{"count":1247,"lastSync":"2026-08-30T10:00:00Z"},"products":{"count":312,"lastSync":null},"orders":{"count":3892,"lastSync":"2026-08-30T11:30:00Z"}}`))
	})

	status, err := f.client.IngestionStatus(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1247), status.Customers.Count)
	require.Nil(t, status.Products.LastSync)
	require.Equal(t, time.Date(2026, 8, 30, 11, 30, 0, 0, time.UTC), *status.Orders.LastSync)
}
