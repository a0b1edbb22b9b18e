package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"donation_platform/internal/infrastructure/bootstrap"
	"donation_platform/internal/infrastructure/config"
	"donation_platform/internal/infrastructure/database"

	"github.com/spf13/cobra"
)

// containerFactory is swapped in tests.
var containerFactory = func(ctx context.Context) (*bootstrap.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return bootstrap.Build(ctx, cfg)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reconciler",
		Short:         "Operator tooling for the donation reconciliation queue",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newListCmd(), newDrainCmd(), newInitTablesCmd())
	return root
}

func newListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print pending reconciliation tasks as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := containerFactory(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			tasks, err := c.Reconciliation.ListPending(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), tasks)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of tasks")
	return cmd
}

func newDrainCmd() *cobra.Command {
	var (
		limit int
		watch time.Duration
	)
	cmd := &cobra.Command{
		Use:   "drain",
		Short: "Replay pending reconciliation tasks once, or every --watch interval",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			c, err := containerFactory(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			if watch > 0 {
				bootstrap.RunReconcileLoop(ctx, c.Reconciliation, watch, limit)
				return nil
			}

			report, err := c.Reconciliation.Drain(ctx, limit)
			if err != nil {
				return err
			}
			if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if report.Failed > 0 {
				return fmt.Errorf("%d task(s) still pending", report.Failed)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of tasks per drain")
	cmd.Flags().DurationVar(&watch, "watch", 0, "keep draining at this interval until interrupted")
	return cmd
}

func newInitTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-tables",
		Short: "Create the DynamoDB tables when they do not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ddb, err := database.ConnectDynamoDB(cmd.Context())
			if err != nil {
				return err
			}
			return database.EnsureTables(cmd.Context(), ddb, database.DonationTables())
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
