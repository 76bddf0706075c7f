package handlers

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/vehicle-valuator/internal/explain"
	"github.com/donaldgifford/vehicle-valuator/internal/notify"
	"github.com/donaldgifford/vehicle-valuator/internal/report"
	"github.com/donaldgifford/vehicle-valuator/internal/store"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// ReportHandler renders stored valuations and sends them to dealers.
type ReportHandler struct {
	store    store.Store
	notifier notify.Notifier
	baseURL  string
}

// NewReportHandler creates a new ReportHandler. baseURL is the externally
// reachable server root used for report links in notifications; it may be
// empty.
func NewReportHandler(s store.Store, n notify.Notifier, baseURL string) *ReportHandler {
	return &ReportHandler{
		store:    s,
		notifier: n,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// ReportOutput is an HTML document.
type ReportOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// NotifyOutput confirms a notification was sent.
type NotifyOutput struct {
	Body struct {
		Status      string `json:"status"       example:"sent"`
		ValuationID string `json:"valuation_id"`
	}
}

// Report renders the HTML report for a stored valuation.
func (h *ReportHandler) Report(ctx context.Context, input *ValuationIDInput) (*ReportOutput, error) {
	r, err := h.result(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := report.Render(ctx, &buf, r.Vehicle, r); err != nil {
		return nil, huma.Error500InternalServerError("rendering report: " + err.Error())
	}

	return &ReportOutput{ContentType: "text/html; charset=utf-8", Body: buf.Bytes()}, nil
}

// Notify sends a stored valuation to the configured notifier.
func (h *ReportHandler) Notify(ctx context.Context, input *ValuationIDInput) (*NotifyOutput, error) {
	r, err := h.result(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.notifier.SendValuation(ctx, h.payload(r)); err != nil {
		return nil, huma.Error502BadGateway("sending notification: " + err.Error())
	}

	resp := &NotifyOutput{}
	resp.Body.Status = "sent"
	resp.Body.ValuationID = r.ID
	return resp, nil
}

func (h *ReportHandler) result(ctx context.Context, id string) (*domain.ValuationResult, error) {
	rec, err := lookupValuation(ctx, h.store, id)
	if err != nil {
		return nil, err
	}
	return storedResult(rec)
}

func (h *ReportHandler) payload(r *domain.ValuationResult) *notify.ValuationPayload {
	p := &notify.ValuationPayload{
		ValuationID: r.ID,
		Vehicle:     vehicleName(r.Vehicle),
		VIN:         r.Vehicle.VIN,
		ZIP:         r.ZIP,
		FinalValue:  explain.Dollars(r.FinalValue),
		PriceRange:  explain.Dollars(r.PriceRange.Low) + " to " + explain.Dollars(r.PriceRange.High),
		Confidence:  r.ConfidenceScore,
		Level:       r.Confidence.Level,
		Method:      r.BaseMethod,
		Explanation: r.Explanation,
		Fallback:    r.FallbackUsed,
	}
	if h.baseURL != "" {
		p.ReportURL = h.baseURL + "/api/v1/valuations/" + r.ID + "/report"
	}
	return p
}

// RegisterReportRoutes registers report and notification endpoints with the
// Huma API.
func RegisterReportRoutes(api huma.API, h *ReportHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-valuation-report",
		Method:      http.MethodGet,
		Path:        "/api/v1/valuations/{id}/report",
		Summary:     "Render a valuation report",
		Description: "Returns a standalone HTML page describing a stored valuation.",
		Tags:        []string{"valuations"},
		Errors:      []int{http.StatusNotFound},
	}, h.Report)

	huma.Register(api, huma.Operation{
		OperationID: "notify-valuation",
		Method:      http.MethodPost,
		Path:        "/api/v1/valuations/{id}/notify",
		Summary:     "Send a valuation notification",
		Description: "Posts a stored valuation to the configured dealer channel.",
		Tags:        []string{"valuations"},
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway},
	}, h.Notify)
}

func vehicleName(v domain.Vehicle) string {
	parts := []string{strconv.Itoa(v.Year), v.Make, v.Model}
	if v.Trim != "" {
		parts = append(parts, v.Trim)
	}
	return strings.Join(parts, " ")
}
