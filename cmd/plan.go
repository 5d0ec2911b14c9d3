package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/hems/app"
	"github.com/kilianp07/hems/config"
	"github.com/kilianp07/hems/core/planner"
	"github.com/kilianp07/hems/infra/logger"
	"github.com/kilianp07/hems/pkg/export"
)

var planFormat string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute the day-ahead schedule and print it",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planFormat, "format", "f", "json", "output format: json or csv")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
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
			logger.New("plan-command").Errorf("service close: %v", err)
		}
	}()

	plan, err := svc.PlanDay(ctx)
	if err != nil {
		var infeasible *planner.InfeasibleHorizonError
		if !errors.As(err, &infeasible) {
			return err
		}
		// Still print the least-bad plan; the feasibility flag and the
		// violation list travel with it.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	switch planFormat {
	case "csv":
		return export.WriteCSV(os.Stdout, plan.Result.Schedule)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	default:
		return fmt.Errorf("unknown output format %q", planFormat)
	}
}
