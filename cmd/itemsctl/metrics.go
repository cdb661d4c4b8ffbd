package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show the service's items_* Prometheus series",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := resty.New().SetTimeout(timeout).R().
			SetContext(cmd.Context()).
			Get(metricsURL + "/metrics")
		if err != nil {
			return err
		}
		if resp.StatusCode() >= 400 {
			return fmt.Errorf("HTTP %d from %s", resp.StatusCode(), metricsURL)
		}
		for _, line := range itemSeries(resp.String()) {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

// itemSeries keeps the sample lines of the service's own collectors.
func itemSeries(exposition string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(exposition))
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "items_") {
			out = append(out, line)
		}
	}
	return out
}

func init() {
	metricsCmd.Flags().StringVar(&metricsURL, "metrics-url", envOr("ITEMS_METRICS_URL", "http://localhost:9090"), "Items metrics URL")
	rootCmd.AddCommand(metricsCmd)
}
