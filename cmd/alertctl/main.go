// Command alertctl is the Punctual admin CLI.
//
// Usage:
//
//	alertctl alerts list [--pending] [--stage PENDING_WAKE_UP]
//	alertctl alerts show --id 8b9f...
//	alertctl alerts notify --id 8b9f... --stage PENDING_DEPARTURE
//	alertctl alerts delete --id 8b9f...
//	alertctl sweep
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yoohyunk/punctualBE/internal/alert"
	"github.com/yoohyunk/punctualBE/internal/config"
	"github.com/yoohyunk/punctualBE/internal/db"
	"github.com/yoohyunk/punctualBE/internal/notify"
	"github.com/yoohyunk/punctualBE/internal/scheduler"
	"github.com/yoohyunk/punctualBE/internal/sms"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "alertctl",
		Short: "Punctual alert administration CLI",
	}

	root.AddCommand(alertsCmd())
	root.AddCommand(sweepCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// alerts command
// --------------------------------------------------------------------------

func alertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Inspect and manage alerts",
	}
	cmd.AddCommand(alertsListCmd())
	cmd.AddCommand(alertsShowCmd())
	cmd.AddCommand(alertsNotifyCmd())
	cmd.AddCommand(alertsDeleteCmd())
	return cmd
}

func alertsListCmd() *cobra.Command {
	var pending bool
	var stage string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, cfg *config.Config, store *alert.PostgresStore) error {
				var alerts []*alert.Alert
				var err error
				if pending || stage != "" {
					alerts, err = store.ListPending(ctx, alert.Stage(stage))
				} else {
					alerts, err = store.List(ctx)
				}
				if err != nil {
					return err
				}
				for _, a := range alerts {
					due := "-"
					if at, ok := a.DueAt(); ok {
						due = at.Format(time.RFC3339)
					}
					fmt.Printf("%s  %-18s  due=%s  %s → %s\n",
						a.ID, a.Stage, due, a.OriginText, a.DestinationText)
				}
				logger.Info("Listed alerts", "count", len(alerts))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&pending, "pending", false, "Only non-terminal alerts")
	cmd.Flags().StringVar(&stage, "stage", "", "Filter by stage (implies --pending)")
	return cmd
}

func alertsShowCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one alert as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			alertID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("--id must be a UUID: %w", err)
			}
			return runWithStore(func(ctx context.Context, cfg *config.Config, store *alert.PostgresStore) error {
				a, err := store.GetByID(ctx, alertID)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(a)
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Alert UUID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func alertsNotifyCmd() *cobra.Command {
	var id, stage string
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Force-dispatch a stage notification (advances the stage)",
		RunE: func(cmd *cobra.Command, args []string) error {
			alertID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("--id must be a UUID: %w", err)
			}
			st := alert.Stage(stage)
			if !st.Pending() {
				return fmt.Errorf("--stage must be a pending stage, got %q", stage)
			}
			return runWithStore(func(ctx context.Context, cfg *config.Config, store *alert.PostgresStore) error {
				sender := sms.NewClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken,
					cfg.TwilioFromNumber, cfg.SMSRequestsPerMin, logger)
				if sender == nil {
					return fmt.Errorf("Twilio credentials are not configured")
				}
				sched := scheduler.New(store, notify.New(sender, logger), scheduler.Config{
					MaxAttempts: cfg.SchedulerMaxAttempts,
				}, logger)
				if err := sched.ManualFire(ctx, alertID, st); err != nil {
					return err
				}
				logger.Info("Stage dispatched", "alert_id", alertID, "stage", st)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Alert UUID")
	cmd.Flags().StringVar(&stage, "stage", "", "Stage to fire (must be the alert's current stage)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("stage")
	return cmd
}

func alertsDeleteCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an alert (administrative)",
		RunE: func(cmd *cobra.Command, args []string) error {
			alertID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("--id must be a UUID: %w", err)
			}
			return runWithStore(func(ctx context.Context, cfg *config.Config, store *alert.PostgresStore) error {
				if err := store.Delete(ctx, alertID); err != nil {
					return err
				}
				logger.Info("Alert deleted", "alert_id", alertID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Alert UUID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// --------------------------------------------------------------------------
// sweep command
// --------------------------------------------------------------------------

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run one scheduler cycle and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, cfg *config.Config, store *alert.PostgresStore) error {
				sender := sms.NewClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken,
					cfg.TwilioFromNumber, cfg.SMSRequestsPerMin, logger)
				if sender == nil {
					return fmt.Errorf("Twilio credentials are not configured")
				}
				sched := scheduler.New(store, notify.New(sender, logger), scheduler.Config{
					MaxAttempts: cfg.SchedulerMaxAttempts,
					BatchSize:   cfg.SchedulerBatchSize,
					Workers:     cfg.SchedulerWorkers,
				}, logger)
				start := time.Now()
				sent, failed, err := sched.Sweep(ctx)
				if err != nil {
					return err
				}
				logger.Info("Sweep finished",
					"sent", sent, "failed", failed,
					"duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runWithStore handles config loading, DB connection, and context cancellation.
func runWithStore(fn func(ctx context.Context, cfg *config.Config, store *alert.PostgresStore) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, alert.NewPostgresStore(pool.Pool))
}
