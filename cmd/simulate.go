package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/hems/app"
	"github.com/kilianp07/hems/config"
	"github.com/kilianp07/hems/infra/logger"
)

var simulateDays int

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replan day by day over a rolling horizon",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVarP(&simulateDays, "days", "d", 7, "number of days to simulate")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("simulate-command").Errorf("service close: %v", err)
		}
	}()

	summaries, err := svc.Simulate(ctx, simulateDays)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}
