package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/vehicle-valuator/internal/api/client"
)

func valuationsCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "valuations",
		Aliases: []string{"val"},
		Short:   "Browse stored valuations",
	}

	root.AddCommand(
		valuationsListCmd(),
		valuationsGetCmd(),
		valuationsReportCmd(),
		valuationsNotifyCmd(),
	)
	return root
}

func valuationsListCmd() *cobra.Command {
	var p apiclient.ListValuationsParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored valuations",
		Example: `  vvt valuations list --make toyota --limit 20
  vvt valuations list --fallback-only --since 2025-06-01T00:00:00Z
  vvt valuations list --order-by final_value --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := newClient().ListValuations(cmd.Context(), &p)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(stdout, out)
			}
			if len(out.Valuations) == 0 {
				fmt.Fprintln(stdout, "No valuations found.")
				return nil
			}
			if err := printValuationsTable(stdout, out.Valuations); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "\nShowing %d of %d\n", len(out.Valuations), out.Total)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&p.VIN, "vin", "", "filter by VIN")
	fl.StringVar(&p.ZIP, "zip", "", "filter by ZIP code")
	fl.StringVar(&p.Make, "make", "", "filter by make")
	fl.IntVar(&p.MinConfidence, "min-confidence", 0, "minimum confidence score")
	fl.BoolVar(&p.FallbackOnly, "fallback-only", false, "only valuations computed as a fallback")
	fl.StringVar(&p.Since, "since", "", "RFC 3339 lower bound on creation time")
	fl.IntVar(&p.Limit, "limit", 0, "page size")
	fl.IntVar(&p.Offset, "offset", 0, "page offset")
	fl.StringVar(&p.OrderBy, "order-by", "", "created_at, final_value or confidence")

	return cmd
}

func valuationsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one stored valuation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := newClient().GetValuation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(stdout, rec)
			}
			return printAuditRecord(stdout, rec)
		},
	}
}

func valuationsReportCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "report <id>",
		Short: "Download the HTML report of a valuation",
		Args:  cobra.ExactArgs(1),
		Example: `  vvt valuations report 6f1c... > report.html
  vvt valuations report 6f1c... --file report.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			html, err := newClient().Report(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if outFile == "" {
				_, err = stdout.Write(html)
				return err
			}
			if err := os.WriteFile(outFile, html, 0o600); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			fmt.Fprintf(stdout, "Report written to %s\n", outFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&outFile, "file", "", "write the report to this file")
	return cmd
}

func valuationsNotifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notify <id>",
		Short: "Send a valuation to the configured notification channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().Notify(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Notification sent for %s\n", args[0])
			return nil
		},
	}
}
