package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/vehicle-valuator/internal/api/middleware"
	"github.com/donaldgifford/vehicle-valuator/internal/store"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// Valuator computes valuations.
type Valuator interface {
	ComputeValuation(ctx context.Context, req *domain.ValuationRequest) (*domain.ValuationResult, error)
}

// ValuationsHandler serves valuation requests and the audit trail.
type ValuationsHandler struct {
	valuator Valuator
	store    store.Store
}

// NewValuationsHandler creates a new ValuationsHandler.
func NewValuationsHandler(v Valuator, s store.Store) *ValuationsHandler {
	return &ValuationsHandler{valuator: v, store: s}
}

// --- Input/Output types ---

// CreateValuationInput is the body of a valuation request.
type CreateValuationInput struct {
	Body domain.ValuationRequest
}

// CreateValuationOutput is the computed valuation.
type CreateValuationOutput struct {
	CorrelationID string `header:"X-Correlation-ID"`
	Body          *domain.ValuationResult
}

// ListValuationsInput filters the audit trail.
type ListValuationsInput struct {
	VIN           string `query:"vin"            doc:"Filter by VIN"`
	ZIP           string `query:"zip"            doc:"Filter by ZIP code"`
	Make          string `query:"make"           doc:"Filter by make (case-insensitive)"`
	MinConfidence int    `query:"min_confidence" doc:"Minimum confidence score"              minimum:"0" maximum:"100"`
	FallbackOnly  bool   `query:"fallback_only"  doc:"Only valuations computed as a fallback"`
	Since         string `query:"since"          doc:"RFC 3339 lower bound on created_at"`
	Limit         int    `query:"limit"          doc:"Number of results (default 50)"        minimum:"0" maximum:"500"`
	Offset        int    `query:"offset"         doc:"Pagination offset"                     minimum:"0"`
	OrderBy       string `query:"order_by"       doc:"Sort field: created_at, final_value or confidence"`
}

// ListValuationsOutput is a page of valuation summaries.
type ListValuationsOutput struct {
	Body struct {
		Valuations []domain.ValuationSummary `json:"valuations"`
		Total      int                       `json:"total"`
		Limit      int                       `json:"limit"`
		Offset     int                       `json:"offset"`
	}
}

// ValuationIDInput addresses one stored valuation.
type ValuationIDInput struct {
	ID string `path:"id" doc:"Valuation ID"`
}

// GetValuationOutput is one audit record.
type GetValuationOutput struct {
	Body *domain.AuditRecord
}

// --- Handlers ---

// Create runs a valuation. Validation failures map to 400 or 422 with the
// error code in the detail; every other failure mode still yields a result.
func (h *ValuationsHandler) Create(
	ctx context.Context,
	input *CreateValuationInput,
) (*CreateValuationOutput, error) {
	req := input.Body
	if req.CorrelationID == "" {
		req.CorrelationID = middleware.CorrelationID(ctx)
	}

	result, err := h.valuator.ComputeValuation(ctx, &req)
	if err != nil {
		return nil, validationError(err)
	}

	return &CreateValuationOutput{CorrelationID: result.CorrelationID, Body: result}, nil
}

// List returns stored valuations, newest first by default.
func (h *ValuationsHandler) List(
	ctx context.Context,
	input *ListValuationsInput,
) (*ListValuationsOutput, error) {
	if !store.ValidOrderBy(input.OrderBy) {
		return nil, validationError(domain.NewValidationError(
			"order_by", input.OrderBy, domain.CodeInvalidEnum, domain.ErrInvalidEnum,
		))
	}

	q := &store.ValuationQuery{
		FallbackOnly: input.FallbackOnly,
		Limit:        input.Limit,
		Offset:       input.Offset,
		OrderBy:      input.OrderBy,
	}
	if input.VIN != "" {
		q.VIN = &input.VIN
	}
	if input.ZIP != "" {
		q.ZIP = &input.ZIP
	}
	if input.Make != "" {
		q.Make = &input.Make
	}
	if input.MinConfidence != 0 {
		q.MinConfidence = &input.MinConfidence
	}
	if input.Since != "" {
		since, err := time.Parse(time.RFC3339, input.Since)
		if err != nil {
			return nil, validationError(domain.NewValidationError(
				"since", input.Since, domain.CodeOutOfRange, domain.ErrOutOfRange,
			))
		}
		q.Since = &since
	}

	rows, total, err := h.store.ListValuations(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing valuations: " + err.Error())
	}
	if rows == nil {
		rows = []domain.ValuationSummary{}
	}

	resp := &ListValuationsOutput{}
	resp.Body.Valuations = rows
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset
	return resp, nil
}

// Get returns the audit record for one valuation.
func (h *ValuationsHandler) Get(
	ctx context.Context,
	input *ValuationIDInput,
) (*GetValuationOutput, error) {
	rec, err := lookupValuation(ctx, h.store, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetValuationOutput{Body: rec}, nil
}

func lookupValuation(ctx context.Context, s store.Store, id string) (*domain.AuditRecord, error) {
	rec, err := s.GetValuation(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("valuation not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("getting valuation: " + err.Error())
	}
	return rec, nil
}

// storedResult decodes the full result saved with rec.
func storedResult(rec *domain.AuditRecord) (*domain.ValuationResult, error) {
	if len(rec.Result) == 0 {
		return nil, huma.Error500InternalServerError("valuation has no stored result")
	}
	var r domain.ValuationResult
	if err := json.Unmarshal(rec.Result, &r); err != nil {
		return nil, huma.Error500InternalServerError("decoding stored result: " + err.Error())
	}
	return &r, nil
}

// validationError maps a *domain.ValidationError to a Huma status error.
func validationError(err error) error {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return huma.Error500InternalServerError("valuation failed: " + err.Error())
	}
	loc := "body." + ve.Field
	if ve.Field == "order_by" || ve.Field == "since" {
		loc = "query." + ve.Field
	}
	return huma.NewError(ve.Status(), ve.Code+": "+ve.Error(), &huma.ErrorDetail{
		Message:  ve.Code,
		Location: loc,
		Value:    ve.Value,
	})
}

// RegisterValuationRoutes registers valuation endpoints with the Huma API.
func RegisterValuationRoutes(api huma.API, h *ValuationsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "create-valuation",
		Method:      http.MethodPost,
		Path:        "/api/v1/valuations",
		Summary:     "Value a vehicle",
		Description: "Validates the request and computes a valuation. Collaborator failures " +
			"degrade the result instead of failing the call.",
		Tags:   []string{"valuations"},
		Errors: []int{http.StatusBadRequest, http.StatusUnprocessableEntity},
		// Required-field checks happen in the pipeline so callers get its error codes.
		SkipValidateBody: true,
	}, h.Create)

	huma.Register(api, huma.Operation{
		OperationID: "list-valuations",
		Method:      http.MethodGet,
		Path:        "/api/v1/valuations",
		Summary:     "List valuations",
		Description: "Returns stored valuations with optional filters and pagination.",
		Tags:        []string{"valuations"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "get-valuation",
		Method:      http.MethodGet,
		Path:        "/api/v1/valuations/{id}",
		Summary:     "Get a valuation",
		Description: "Returns the audit record of one valuation, including its full result.",
		Tags:        []string{"valuations"},
		Errors:      []int{http.StatusNotFound},
	}, h.Get)
}
