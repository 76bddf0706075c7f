package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// ValuationList is one page of stored valuations.
type ValuationList struct {
	Valuations []domain.ValuationSummary `json:"valuations"`
	Total      int                       `json:"total"`
	Limit      int                       `json:"limit"`
	Offset     int                       `json:"offset"`
}

// ListValuationsParams filters ListValuations. Zero values are omitted.
type ListValuationsParams struct {
	VIN           string
	ZIP           string
	Make          string
	MinConfidence int
	FallbackOnly  bool
	Since         string
	Limit         int
	Offset        int
	OrderBy       string
}

func (p *ListValuationsParams) query() string {
	v := url.Values{}
	set := func(k, s string) {
		if s != "" {
			v.Set(k, s)
		}
	}
	setInt := func(k string, n int) {
		if n > 0 {
			v.Set(k, strconv.Itoa(n))
		}
	}
	set("vin", p.VIN)
	set("zip", p.ZIP)
	set("make", p.Make)
	set("since", p.Since)
	set("order_by", p.OrderBy)
	setInt("min_confidence", p.MinConfidence)
	setInt("limit", p.Limit)
	setInt("offset", p.Offset)
	if p.FallbackOnly {
		v.Set("fallback_only", "true")
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// Value requests a new valuation.
func (c *Client) Value(ctx context.Context, req *domain.ValuationRequest) (*domain.ValuationResult, error) {
	var r domain.ValuationResult
	if err := c.post(ctx, "/api/v1/valuations", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListValuations returns stored valuations matching p.
func (c *Client) ListValuations(ctx context.Context, p *ListValuationsParams) (*ValuationList, error) {
	if p == nil {
		p = &ListValuationsParams{}
	}
	var out ValuationList
	if err := c.get(ctx, "/api/v1/valuations"+p.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetValuation returns the audit record for id.
func (c *Client) GetValuation(ctx context.Context, id string) (*domain.AuditRecord, error) {
	var rec domain.AuditRecord
	if err := c.get(ctx, "/api/v1/valuations/"+url.PathEscape(id), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Report returns the HTML report for id.
func (c *Client) Report(ctx context.Context, id string) ([]byte, error) {
	return c.raw(ctx, http.MethodGet, fmt.Sprintf("/api/v1/valuations/%s/report", url.PathEscape(id)), nil)
}

// Notify sends the stored valuation id to the server's notifier.
func (c *Client) Notify(ctx context.Context, id string) error {
	return c.post(ctx, fmt.Sprintf("/api/v1/valuations/%s/notify", url.PathEscape(id)), struct{}{}, nil)
}
