package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/storepulse/storepulse-cli/apiclient"
)

var (
	loginEmail    string
	loginStoreURL string

	registerName        string
	registerEmail       string
	registerStoreURL    string
	registerAccessToken string
)

// loginCmd authenticates an existing tenant
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to an existing StorePulse account",
	RunE:  runLogin,
}

// registerCmd connects a new Shopify store
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new StorePulse account for a Shopify store",
	RunE:  runRegister,
}

// logoutCmd ends the session and clears stored credentials
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear stored credentials",
	Run: func(cmd *cobra.Command, args []string) {
		client.controller.Logout()
	},
}

// whoamiCmd prints the current session state
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently authenticated tenant",
	RunE:  runWhoami,
}

func runLogin(cmd *cobra.Command, args []string) error {
	result := client.controller.Login(cmd.Context(), apiclient.LoginRequest{
		Email:           loginEmail,
		ShopifyStoreURL: loginStoreURL,
	})
	if !result.Success {
		return result.Err
	}
	fmt.Printf("Logged in as %s (%s)\n", result.Data.Tenant.Name, result.Data.Tenant.Email)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	result := client.controller.Register(cmd.Context(), apiclient.RegisterRequest{
		Name:               registerName,
		Email:              registerEmail,
		ShopifyStoreURL:    registerStoreURL,
		ShopifyAccessToken: registerAccessToken,
	})
	if !result.Success {
		return result.Err
	}
	fmt.Printf("Account created for %s\n", result.Data.Tenant.Name)
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	state := client.controller.State()
	if !state.IsAuthenticated {
		fmt.Println("Not logged in")
		return nil
	}
	tenant := state.CurrentTenant
	fmt.Printf("Tenant:    %s\n", tenant.Name)
	fmt.Printf("Email:     %s\n", tenant.Email)
	fmt.Printf("Store URL: %s\n", tenant.ShopifyStoreURL)
	fmt.Printf("Active:    %t\n", tenant.IsActive)
	return nil
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginStoreURL, "store-url", "", "Shopify store URL")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("store-url")

	registerCmd.Flags().StringVar(&registerName, "name", "", "store display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerStoreURL, "store-url", "", "Shopify store URL")
	registerCmd.Flags().StringVar(&registerAccessToken, "access-token", "", "Shopify Admin API access token")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("store-url")
	_ = registerCmd.MarkFlagRequired("access-token")
}
