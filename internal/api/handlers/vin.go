package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/vehicle-valuator/pkg/vin"
)

// ValidateVINInput is a VIN to check.
type ValidateVINInput struct {
	Body struct {
		VIN string `json:"vin" example:"1HGCM82633A004352" doc:"Vehicle Identification Number"`
	}
}

// ValidateVINOutput is the check result. Invalid VINs are reported in the
// body with a 200 status.
type ValidateVINOutput struct {
	Body vin.Result
}

// ValidateVIN checks format and check digit without running a valuation.
func ValidateVIN(_ context.Context, input *ValidateVINInput) (*ValidateVINOutput, error) {
	return &ValidateVINOutput{Body: vin.Validate(input.Body.VIN)}, nil
}

// RegisterVINRoutes registers the VIN endpoint with the Huma API.
func RegisterVINRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "validate-vin",
		Method:      http.MethodPost,
		Path:        "/api/v1/vin/validate",
		Summary:     "Validate a VIN",
		Description: "Checks the 17-character format and the position 9 check digit.",
		Tags:        []string{"vin"},
	}, ValidateVIN)
}
