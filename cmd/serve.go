package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/hems/api/plans"
	"github.com/kilianp07/hems/app"
	"github.com/kilianp07/hems/config"
	"github.com/kilianp07/hems/core/planner"
	"github.com/kilianp07/hems/infra/logger"
)

var serveInterval time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Replan periodically and expose the latest plan over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().DurationVarP(&serveInterval, "interval", "i", time.Hour, "replanning interval")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New("serve-command")
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
			log.Errorf("service close: %v", err)
		}
	}()

	store := plans.NewStore()
	replan := func() {
		plan, err := svc.PlanDay(ctx)
		var infeasible *planner.InfeasibleHorizonError
		if err != nil && !errors.As(err, &infeasible) {
			log.Errorf("plan cycle: %v", err)
			return
		}
		if err != nil {
			log.Warnf("plan cycle infeasible: %v", err)
		}
		store.Set(plan)
	}
	replan()

	go func() {
		ticker := time.NewTicker(serveInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				replan()
			}
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/api/plan", plans.NewPlanHandler(store, cfg.API.Token))
	srv := &http.Server{
		Addr:              cfg.API.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("server shutdown: %v", err)
		}
	}()

	log.Infof("serving plans on %s every %s", cfg.API.Addr, serveInterval)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
