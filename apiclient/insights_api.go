package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// InsightsSummary carries the dashboard's headline aggregates with
// period-over-period growth rates.
type InsightsSummary struct {
	TotalCustomers    int64       `json:"totalCustomers"`
	TotalOrders       int64       `json:"totalOrders"`
	TotalRevenue      float64     `json:"totalRevenue"`
	AverageOrderValue float64     `json:"averageOrderValue"`
	Growth            GrowthRates `json:"growth"`
}

// GrowthRates are percentage changes versus the previous period.
type GrowthRates struct {
	Customers     float64 `json:"customers"`
	Orders        float64 `json:"orders"`
	Revenue       float64 `json:"revenue"`
	AvgOrderValue float64 `json:"avgOrderValue"`
}

// OrderBucket is one point on the orders-by-date chart.
type OrderBucket struct {
	Date          string  `json:"date"`
	OrderCount    int     `json:"orderCount"`
	TotalRevenue  float64 `json:"totalRevenue"`
	CustomerCount int     `json:"customerCount"`
	AvgOrderValue float64 `json:"avgOrderValue"`
}

// TopCustomer is one row of the top-customers report.
type TopCustomer struct {
	ID               string  `json:"id"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Email            string  `json:"email"`
	PeriodSpend      float64 `json:"periodSpend"`
	PeriodOrderCount int     `json:"periodOrderCount"`
	AvgOrderValue    float64 `json:"avgOrderValue"`
	TotalSpent       float64 `json:"totalSpent"`
	OrdersCount      int     `json:"ordersCount"`
}

// ProductPerformance is one row of the product-performance report.
type ProductPerformance struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Handle            string  `json:"handle"`
	Vendor            string  `json:"vendor"`
	ProductType       string  `json:"productType"`
	Price             float64 `json:"price"`
	SoldQuantity      int     `json:"soldQuantity"`
	Revenue           float64 `json:"revenue"`
	InventoryQuantity int     `json:"inventoryQuantity"`
}

// TrendPoint is one point on a revenue-trends series.
type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// CustomerAcquisition summarizes new versus returning customer activity.
type CustomerAcquisition struct {
	NewCustomers             int     `json:"newCustomers"`
	ReturningCustomers       int     `json:"returningCustomers"`
	ConversionRate           float64 `json:"conversionRate"`
	AverageTimeToSecondOrder float64 `json:"averageTimeToSecondOrder"`
}

// DateRangeParams scope a report to a date window, optionally bucketed
// ("day", "week", "month"). Empty fields are omitted from the query.
type DateRangeParams struct {
	StartDate string
	EndDate   string
	GroupBy   string
}

// TopCustomersParams scope the top-customers report.
type TopCustomersParams struct {
	Limit  int
	Period string
}

// ProductPerformanceParams scope the product-performance report.
type ProductPerformanceParams struct {
	Limit  int
	SortBy string
	Period string
}

// CustomerAcquisitionParams scope the customer-acquisition report.
type CustomerAcquisitionParams struct {
	GroupBy string
	Period  string
}

// Summary fetches the headline aggregates.
func (c *Client) Summary(ctx context.Context) (*InsightsSummary, error) {
	var summary InsightsSummary
	if err := c.do(ctx, http.MethodGet, summaryPath, nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// OrdersByDate fetches the order time series for the given window.
func (c *Client) OrdersByDate(ctx context.Context, params DateRangeParams) ([]OrderBucket, error) {
	var buckets []OrderBucket
	if err := c.do(ctx, http.MethodGet, ordersByDatePath, params.query(), nil, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// TopCustomers fetches the highest-spend customers for the period.
func (c *Client) TopCustomers(ctx context.Context, params TopCustomersParams) ([]TopCustomer, error) {
	query := url.Values{}
	setIfPositive(query, "limit", params.Limit)
	setIfPresent(query, "period", params.Period)

	var customers []TopCustomer
	if err := c.do(ctx, http.MethodGet, topCustomersPath, query, nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// ProductPerformanceReport fetches per-product sales figures.
func (c *Client) ProductPerformanceReport(ctx context.Context, params ProductPerformanceParams) ([]ProductPerformance, error) {
	query := url.Values{}
	setIfPositive(query, "limit", params.Limit)
	setIfPresent(query, "sort_by", params.SortBy)
	setIfPresent(query, "period", params.Period)

	var products []ProductPerformance
	if err := c.do(ctx, http.MethodGet, productPerformancePath, query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// RevenueTrends fetches the revenue time series for the given window.
func (c *Client) RevenueTrends(ctx context.Context, params DateRangeParams) ([]TrendPoint, error) {
	var points []TrendPoint
	if err := c.do(ctx, http.MethodGet, revenueTrendsPath, params.query(), nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// CustomerAcquisitionReport fetches new-versus-returning customer figures.
func (c *Client) CustomerAcquisitionReport(ctx context.Context, params CustomerAcquisitionParams) (*CustomerAcquisition, error) {
	query := url.Values{}
	setIfPresent(query, "group_by", params.GroupBy)
	setIfPresent(query, "period", params.Period)

	var acquisition CustomerAcquisition
	if err := c.do(ctx, http.MethodGet, customerAcquisitionPath, query, nil, &acquisition); err != nil {
		return nil, err
	}
	return &acquisition, nil
}

func (p DateRangeParams) query() url.Values {
	query := url.Values{}
	setIfPresent(query, "start_date", p.StartDate)
	setIfPresent(query, "end_date", p.EndDate)
	setIfPresent(query, "group_by", p.GroupBy)
	return query
}

func setIfPresent(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}

func setIfPositive(query url.Values, key string, value int) {
	if value > 0 {
		query.Set(key, strconv.Itoa(value))
	}
}
