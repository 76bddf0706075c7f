package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/vehicle-valuator/pkg/vin"
)

var errInvalidVIN = errors.New("VIN is not valid")

func vinCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "vin <vin>",
		Short: "Validate a VIN",
		Long: "Checks a VIN's format and check digit. With --local the check runs in\n" +
			"the CLI without contacting the server.",
		Args: cobra.ExactArgs(1),
		Example: `  vvt vin 1HGCM82633A004352
  vvt vin 1hgcm82633a004352 --local`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r *vin.Result
			if local {
				res := vin.Validate(args[0])
				r = &res
			} else {
				var err error
				if r, err = newClient().ValidateVIN(cmd.Context(), args[0]); err != nil {
					return err
				}
			}

			var err error
			if jsonOutput() {
				err = outputJSON(stdout, r)
			} else {
				err = printVINResult(stdout, r)
			}
			if err != nil {
				return err
			}
			if !r.OK {
				return errInvalidVIN
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "validate without calling the server")
	return cmd
}
