package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/solbatt/solbatt/app"
	"github.com/solbatt/solbatt/config"
)

var scheduleOut string

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Generate a single schedule and print it as JSON",
	RunE:  generateSchedule,
}

func init() {
	scheduleCmd.Flags().StringVarP(&scheduleOut, "output", "o", "", "write the schedule to a file instead of stdout")
	rootCmd.AddCommand(scheduleCmd)
}

func generateSchedule(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// A one-shot run never publishes to the controller.
	cfg.MQTT.Enabled = false

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	res, err := svc.RunOnce(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	if scheduleOut == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	return os.WriteFile(scheduleOut, data, 0o644)
}
