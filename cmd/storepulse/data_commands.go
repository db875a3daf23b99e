package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/storepulse/storepulse-cli/apiclient"
	"github.com/storepulse/storepulse-cli/internal/utils"
)

var (
	profileName  string
	profileEmail string

	shopifyAccessToken string
	shopifyAPIKey      string

	syncFull        bool
	syncOrderStatus string

	insightStart   string
	insightEnd     string
	insightGroupBy string
	insightLimit   int
	insightSortBy  string
	insightPeriod  string
)

// profileCmd groups tenant profile operations
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the tenant profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the tenant profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		tenant, err := client.api.Profile(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(tenant)
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the tenant name or email",
	RunE:  runProfileUpdate,
}

// credentialsCmd rotates the stored Shopify API credentials
var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage Shopify API credentials",
}

var credentialsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rotate the Shopify access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		err := client.api.UpdateShopifyCredentials(cmd.Context(), apiclient.ShopifyCredentialsUpdate{
			ShopifyAccessToken: shopifyAccessToken,
			ShopifyAPIKey:      shopifyAPIKey,
		})
		if err != nil {
			return err
		}
		fmt.Println("Shopify credentials updated")
		return nil
	},
}

// statsCmd prints the dashboard headline counters
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show tenant statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		stats, err := client.api.Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Customers: %d\n", stats.Customers)
		fmt.Printf("Products:  %d\n", stats.Products)
		fmt.Printf("Orders:    %d\n", stats.Orders)
		fmt.Printf("Revenue:   $%.2f\n", stats.TotalRevenue)
		return nil
	},
}

// syncCmd triggers backend ingestion runs
var syncCmd = &cobra.Command{
	Use:       "sync [customers|products|orders|all]",
	Short:     "Trigger a data sync from Shopify",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"customers", "products", "orders", "all"},
	RunE:      runSync,
}

// ingestStatusCmd reports per-entity ingestion progress
var ingestStatusCmd = &cobra.Command{
	Use:   "ingest-status",
	Short: "Show ingestion status per entity",
	RunE:  runIngestStatus,
}

// insightsCmd fetches analytics reports
var insightsCmd = &cobra.Command{
	Use:   "insights [report]",
	Short: "Fetch an analytics report",
	Long: `Fetch an analytics report. Available reports:
  summary               headline totals and growth rates
  orders-by-date        order counts and revenue per day
  top-customers         highest-spend customers
  product-performance   per-product sales figures
  revenue-trends        revenue time series
  customer-acquisition  new vs returning customers`,
	Args: cobra.ExactArgs(1),
	RunE: runInsights,
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	tenant, err := client.api.UpdateProfile(cmd.Context(), apiclient.ProfileUpdate{
		Name:  profileName,
		Email: profileEmail,
	})
	if err != nil {
		return err
	}
	client.controller.UpdateTenantData(tenant)
	fmt.Printf("Profile updated for %s\n", tenant.Name)
	return nil
}

func runSync(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	ctx := cmd.Context()

	switch args[0] {
	case "customers":
		return printSyncResult(client.api.SyncCustomers(ctx, syncFull))
	case "products":
		return printSyncResult(client.api.SyncProducts(ctx, syncFull))
	case "orders":
		return printSyncResult(client.api.SyncOrders(ctx, syncFull, syncOrderStatus))
	case "all":
		result, err := client.api.FullSync(ctx)
		if err != nil {
			return err
		}
		for entity, counts := range result.Results {
			fmt.Printf("%s: created %d, updated %d\n", entity, counts.Created, counts.Updated)
		}
		return nil
	}
	return errors.Errorf("unknown sync target %q", args[0])
}

func runIngestStatus(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	status, err := client.api.IngestionStatus(cmd.Context())
	if err != nil {
		return err
	}
	printEntityState("customers", status.Customers)
	printEntityState("products", status.Products)
	printEntityState("orders", status.Orders)
	return nil
}

func runInsights(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	ctx := cmd.Context()
	dateRange := apiclient.DateRangeParams{StartDate: insightStart, EndDate: insightEnd, GroupBy: insightGroupBy}

	switch args[0] {
	case "summary":
		return printResult(client.api.Summary(ctx))
	case "orders-by-date":
		return printResult(client.api.OrdersByDate(ctx, dateRange))
	case "top-customers":
		return printResult(client.api.TopCustomers(ctx, apiclient.TopCustomersParams{Limit: insightLimit, Period: insightPeriod}))
	case "product-performance":
		return printResult(client.api.ProductPerformanceReport(ctx, apiclient.ProductPerformanceParams{Limit: insightLimit, SortBy: insightSortBy, Period: insightPeriod}))
	case "revenue-trends":
		return printResult(client.api.RevenueTrends(ctx, dateRange))
	case "customer-acquisition":
		return printResult(client.api.CustomerAcquisitionReport(ctx, apiclient.CustomerAcquisitionParams{GroupBy: insightGroupBy, Period: insightPeriod}))
	}
	return errors.Errorf("unknown report %q", args[0])
}

func printSyncResult(result *apiclient.SyncResult, err error) error {
	if err != nil {
		return err
	}
	fmt.Printf("created %d, updated %d\n", result.Results.Created, result.Results.Updated)
	return nil
}

func printEntityState(name string, state apiclient.EntitySyncState) {
	lastSync := "never"
	if ts := utils.Value(state.LastSync); !ts.IsZero() {
		lastSync = ts.Format(time.RFC3339)
	}
	fmt.Printf("%-10s %8d records, last sync %s\n", name, state.Count, lastSync)
}

func printResult[T any](result T, err error) error {
	if err != nil {
		return err
	}
	return printJSON(result)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)
	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "new display name")
	profileUpdateCmd.Flags().StringVar(&profileEmail, "email", "", "new email")

	credentialsCmd.AddCommand(credentialsUpdateCmd)
	credentialsUpdateCmd.Flags().StringVar(&shopifyAccessToken, "access-token", "", "Shopify Admin API access token")
	credentialsUpdateCmd.Flags().StringVar(&shopifyAPIKey, "api-key", "", "Shopify API key")
	_ = credentialsUpdateCmd.MarkFlagRequired("access-token")

	syncCmd.Flags().BoolVar(&syncFull, "full", false, "run a complete resync instead of incremental")
	syncCmd.Flags().StringVar(&syncOrderStatus, "status", "any", "order status filter (orders only)")

	insightsCmd.Flags().StringVar(&insightStart, "start", "", "start date (YYYY-MM-DD)")
	insightsCmd.Flags().StringVar(&insightEnd, "end", "", "end date (YYYY-MM-DD)")
	insightsCmd.Flags().StringVar(&insightGroupBy, "group-by", "", "bucket size: day, week, or month")
	insightsCmd.Flags().IntVar(&insightLimit, "limit", 0, "maximum rows")
	insightsCmd.Flags().StringVar(&insightSortBy, "sort-by", "", "sort column")
	insightsCmd.Flags().StringVar(&insightPeriod, "period", "", "reporting period, e.g. 30d")
}
