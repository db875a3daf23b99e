package apiclient

// Backend endpoint paths, relative to the configured base URL.
const (
	registerPath = "/auth/register"
	loginPath    = "/auth/login"
	verifyPath   = "/auth/verify"

	profilePath            = "/tenant/profile"
	shopifyCredentialsPath = "/tenant/shopify-credentials"
	statsPath              = "/tenant/stats"

	syncCustomersPath   = "/ingestion/customers"
	syncProductsPath    = "/ingestion/products"
	syncOrdersPath      = "/ingestion/orders"
	fullSyncPath        = "/ingestion/full-sync"
	ingestionStatusPath = "/ingestion/status"

	summaryPath             = "/insights/summary"
	ordersByDatePath        = "/insights/orders-by-date"
	topCustomersPath        = "/insights/top-customers"
	productPerformancePath  = "/insights/product-performance"
	revenueTrendsPath       = "/insights/revenue-trends"
	customerAcquisitionPath = "/insights/customer-acquisition"
)
