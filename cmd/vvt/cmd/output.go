package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/donaldgifford/vehicle-valuator/internal/explain"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
	"github.com/donaldgifford/vehicle-valuator/pkg/vin"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printValuation(w io.Writer, r *domain.ValuationResult) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", r.ID)
	tw.writef("Vehicle:\t%d %s %s %s\n", r.Vehicle.Year, r.Vehicle.Make, r.Vehicle.Model, r.Vehicle.Trim)
	tw.writef("Value:\t%s\n", explain.Dollars(r.FinalValue))
	tw.writef("Range:\t%s - %s\n", explain.Dollars(r.PriceRange.Low), explain.Dollars(r.PriceRange.High))
	tw.writef("Base:\t%s (%s)\n", explain.Dollars(r.BaseValue), r.BaseMethod)
	tw.writef("Confidence:\t%d/100 (%s)\n", r.ConfidenceScore, r.Confidence.Level)
	tw.writef("Listings:\t%d\n", r.ListingCount)
	tw.writef("Sources:\t%s\n", strings.Join(r.SourcesUsed, ", "))
	if r.FallbackUsed {
		tw.writef("Fallback:\tyes\n")
	}
	if len(r.Adjustments) > 0 {
		tw.writef("\nFACTOR\tAMOUNT\tREASON\n")
		for _, a := range r.Adjustments {
			tw.writef("%s\t%s\t%s\n", a.Factor, signed(a.Amount), truncate(a.Reason, 60))
		}
	}
	if err := tw.finish(); err != nil {
		return err
	}
	if r.Explanation != "" {
		_, err := fmt.Fprintf(w, "\n%s\n", r.Explanation)
		return err
	}
	return nil
}

func printValuationsTable(w io.Writer, rows []domain.ValuationSummary) error {
	tw := newTabWriter(w)
	tw.writef("ID\tVEHICLE\tZIP\tVALUE\tCONFIDENCE\tFALLBACK\tCREATED\n")
	for i := range rows {
		r := &rows[i]
		tw.writef("%s\t%d %s %s\t%s\t%s\t%d\t%v\t%s\n",
			r.ValuationID,
			r.Year, r.Make, r.Model,
			r.ZIP,
			explain.Dollars(r.FinalValue),
			r.ConfidenceScore,
			r.FallbackUsed,
			r.CreatedAt.Format(timeLayout),
		)
	}
	return tw.finish()
}

func printAuditRecord(w io.Writer, rec *domain.AuditRecord) error {
	tw := newTabWriter(w)
	tw.writef("Valuation:\t%s\n", rec.ValuationID)
	tw.writef("Correlation:\t%s\n", rec.CorrelationID)
	tw.writef("Vehicle:\t%d %s %s\n", rec.Year, rec.Make, rec.Model)
	if rec.VIN != "" {
		tw.writef("VIN:\t%s\n", rec.VIN)
	}
	tw.writef("Value:\t%s\n", explain.Dollars(rec.FinalValue))
	tw.writef("Confidence:\t%d/100\n", rec.ConfidenceScore)
	tw.writef("Quality:\t%d\n", rec.QualityScore)
	tw.writef("Sources:\t%s\n", strings.Join(rec.SourcesUsed, ", "))
	tw.writef("Created:\t%s\n", rec.CreatedAt.Format(timeLayout))
	return tw.finish()
}

func printVINResult(w io.Writer, r *vin.Result) error {
	tw := newTabWriter(w)
	tw.writef("VIN:\t%s\n", r.VIN)
	if r.OK {
		tw.writef("Valid:\tyes\n")
	} else {
		tw.writef("Valid:\tno\n")
		tw.writef("Code:\t%s\n", r.Code)
		tw.writef("Reason:\t%s\n", r.Message)
	}
	return tw.finish()
}

func printJobRunsTable(w io.Writer, runs []domain.JobRun) error {
	tw := newTabWriter(w)
	tw.writef("JOB\tSTATUS\tSTARTED\tCOMPLETED\tROWS\tERROR\n")
	for i := range runs {
		r := &runs[i]
		completed := "-"
		if r.CompletedAt != nil {
			completed = r.CompletedAt.Format(timeLayout)
		}
		rows := "-"
		if r.RowsAffected != nil {
			rows = fmt.Sprint(*r.RowsAffected)
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\n",
			r.JobName,
			r.Status,
			r.StartedAt.Format(timeLayout),
			completed,
			rows,
			truncate(r.ErrorText, 40),
		)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func signed(v float64) string {
	if v < 0 {
		return "-" + explain.Dollars(-v)
	}
	return "+" + explain.Dollars(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
