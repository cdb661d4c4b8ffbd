package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	apiURL     string
	metricsURL string
	output     string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:          "itemsctl",
	Short:        "Items CLI - command line client for the items service",
	Long:         `itemsctl calls the items HTTP API: list, read, create, rename and delete items, and check the service health.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&apiURL, "api-url", "a", envOr("ITEMS_API_URL", "http://localhost:8080"), "Items API URL")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newClient() *Client {
	return NewClient(apiURL, timeout)
}
