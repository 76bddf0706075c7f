package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

type valueFlags struct {
	vin, make, model, trim string
	year, mileage          int
	condition, title, zip  string
	features               []string
	listingsFile           string
	requestFile            string
	correlationID          string
}

func valueCmd() *cobra.Command {
	var f valueFlags

	cmd := &cobra.Command{
		Use:   "value",
		Short: "Request a valuation",
		Long: "Values a vehicle on the server. Describe it with flags, or pass a full\n" +
			"request document with --request (use - for stdin).",
		Example: `  vvt value --year 2020 --make Toyota --model Camry --mileage 45000 --zip 90210
  vvt value --vin 1HGCM82633A004352 --year 2003 --make Honda --model Accord --condition fair
  vvt value --request request.json --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := f.request(cmd)
			if err != nil {
				return err
			}

			r, err := newClient().Value(cmd.Context(), req)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(stdout, r)
			}
			return printValuation(stdout, r)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.vin, "vin", "", "vehicle identification number")
	fl.IntVar(&f.year, "year", 0, "model year")
	fl.StringVar(&f.make, "make", "", "manufacturer")
	fl.StringVar(&f.model, "model", "", "model name")
	fl.StringVar(&f.trim, "trim", "", "trim level")
	fl.IntVar(&f.mileage, "mileage", -1, "odometer reading in miles")
	fl.StringVar(&f.condition, "condition", "", "excellent, good, fair or poor")
	fl.StringVar(&f.title, "title", "", "title status: clean, salvage, rebuilt or lemon")
	fl.StringVar(&f.zip, "zip", "", "ZIP code of the sale")
	fl.StringSliceVar(&f.features, "feature", nil, "optional feature (repeatable)")
	fl.StringVar(&f.listingsFile, "listings", "", "JSON file of raw comparable listings")
	fl.StringVar(&f.requestFile, "request", "", "JSON valuation request file, - for stdin")
	fl.StringVar(&f.correlationID, "correlation-id", "", "caller-supplied correlation ID")

	return cmd
}

func (f *valueFlags) request(cmd *cobra.Command) (*domain.ValuationRequest, error) {
	if f.requestFile != "" {
		var req domain.ValuationRequest
		if err := decodeFile(cmd, f.requestFile, &req); err != nil {
			return nil, fmt.Errorf("reading request: %w", err)
		}
		return &req, nil
	}

	req := &domain.ValuationRequest{
		Vehicle: domain.Vehicle{
			VIN:   f.vin,
			Year:  f.year,
			Make:  f.make,
			Model: f.model,
			Trim:  f.trim,
		},
		Condition:     domain.Condition(f.condition),
		TitleStatus:   domain.TitleStatus(f.title),
		ZIP:           f.zip,
		Features:      f.features,
		CorrelationID: f.correlationID,
	}
	if f.mileage >= 0 {
		m := f.mileage
		req.Mileage = &m
	}
	if f.listingsFile != "" {
		if err := decodeFile(cmd, f.listingsFile, &req.RawListings); err != nil {
			return nil, fmt.Errorf("reading listings: %w", err)
		}
	}
	return req, nil
}

func decodeFile(cmd *cobra.Command, path string, dst any) error {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		fh, err := os.Open(path) //nolint:gosec // path from trusted CLI flag
		if err != nil {
			return err
		}
		defer fh.Close()
		r = fh
	}
	return json.NewDecoder(r).Decode(dst)
}
