package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/solbatt/solbatt/config"
	"github.com/solbatt/solbatt/connectors/elpris"
	"github.com/solbatt/solbatt/core/model"
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Fetch and print day-ahead prices for the configured area",
	RunE:  printPrices,
}

func init() {
	rootCmd.AddCommand(pricesCmd)
}

func printPrices(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := elpris.NewClient(elpris.WithArea(cfg.Prices.Area))
	if err != nil {
		return err
	}
	entries, err := client.FetchDayAhead(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLOT\tSPOT\tBUY\tSELL")
	for _, e := range entries {
		p := model.NewPrice(e.SEKPerKWh, cfg.Prices.Tariff)
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\n",
			e.TimeStart.Local().Format(time.RFC3339), e.SEKPerKWh, p.BuyPerKWh(), p.SellPerKWh())
	}
	return w.Flush()
}
