package valuation

import (
	"strconv"
	"strings"
	"time"

	"github.com/donaldgifford/vehicle-valuator/pkg/normalize"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
	"github.com/donaldgifford/vehicle-valuator/pkg/vin"
)

const (
	minModelYear = 1981
	maxMileage   = 999_999
)

// input is a validated, normalized request.
type input struct {
	vehicle           domain.Vehicle
	mileage           *int
	condition         domain.Condition
	conditionSupplied bool
	title             domain.TitleStatus
	zip               string
	features          []string
	saleDate          *time.Time
	raw               []domain.RawListing
	rawSupplied       bool
	listingSource     string
	correlationID     string
	request           *domain.ValuationRequest
}

// validate rejects requests missing identity fields and normalizes the rest.
// It never guesses at make, model or year.
func (o *Orchestrator) validate(req *domain.ValuationRequest) (*input, error) {
	if req == nil {
		return nil, domain.NewValidationError("request", "", domain.CodeMissingField, domain.ErrMissingField)
	}

	v := req.Vehicle
	v.Make = strings.TrimSpace(v.Make)
	v.Model = strings.TrimSpace(v.Model)
	v.Trim = strings.TrimSpace(v.Trim)

	if v.VIN != "" {
		if err := vin.Check(v.VIN); err != nil {
			return nil, err
		}
		v.VIN = vin.Normalize(v.VIN)
	}

	switch {
	case v.Make == "":
		return nil, domain.NewValidationError("make", "", domain.CodeMissingField, domain.ErrMissingField)
	case v.Model == "":
		return nil, domain.NewValidationError("model", "", domain.CodeMissingField, domain.ErrMissingField)
	case v.Year == 0:
		return nil, domain.NewValidationError("year", "", domain.CodeMissingField, domain.ErrMissingField)
	}

	if maxYear := o.now().Year() + 1; v.Year < minModelYear || v.Year > maxYear {
		return nil, domain.NewValidationError("year", strconv.Itoa(v.Year), domain.CodeOutOfRange, domain.ErrOutOfRange)
	}

	if req.Mileage != nil && (*req.Mileage < 0 || *req.Mileage > maxMileage) {
		return nil, domain.NewValidationError("mileage", strconv.Itoa(*req.Mileage), domain.CodeOutOfRange, domain.ErrOutOfRange)
	}

	// Unrecognized condition text is treated like a missing one.
	cond, supplied := normalize.ParseCondition(string(req.Condition))

	features := make([]string, 0, len(req.Features))
	for _, f := range req.Features {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}

	return &input{
		vehicle:           v,
		mileage:           req.Mileage,
		condition:         cond,
		conditionSupplied: supplied,
		title:             normalize.TitleStatus(string(req.TitleStatus)),
		zip:               strings.TrimSpace(req.ZIP),
		features:          features,
		saleDate:          req.SaleDate,
		raw:               req.RawListings,
		rawSupplied:       req.RawListings != nil,
		listingSource:     req.ListingSource,
		correlationID:     strings.TrimSpace(req.CorrelationID),
		request:           req,
	}, nil
}
