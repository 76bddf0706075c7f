package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func maintenanceCmds() []*cobra.Command {
	return []*cobra.Command{jobsCmd(), pruneCmd()}
}

func jobsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List the latest run of each scheduled job",
		Long: "Shows the most recent run of listing_cache_prune and audit_retention,\n" +
			"with status, rows affected and any error.",
		Example: `  vvt jobs
  vvt jobs --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runs, err := newClient().ListJobs(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(stdout, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(stdout, "No job runs found.")
				return nil
			}
			return printJobRunsTable(stdout, runs)
		},
	}
}

func pruneCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prune",
		Short: "Run a maintenance job now",
	}

	root.AddCommand(
		pruneSubCmd("cache", "Delete expired listing cache entries", func(ctx context.Context) (int, error) {
			return newClient().PruneCache(ctx)
		}),
		pruneSubCmd("audit", "Delete audit records past the retention window", func(ctx context.Context) (int, error) {
			return newClient().PruneAudit(ctx)
		}),
	)
	return root
}

func pruneSubCmd(use, short string, fn func(context.Context) (int, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := fn(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(stdout, map[string]int{"pruned": n})
			}
			fmt.Fprintf(stdout, "Pruned %d rows.\n", n)
			return nil
		},
	}
}
