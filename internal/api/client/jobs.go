package client

import (
	"context"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
	"github.com/donaldgifford/vehicle-valuator/pkg/vin"
)

// ListJobs returns the most recent run for each distinct scheduled job.
func (c *Client) ListJobs(ctx context.Context) ([]domain.JobRun, error) {
	var runs []domain.JobRun
	if err := c.get(ctx, "/api/v1/jobs", &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// PruneCache asks the server to delete expired listing cache entries.
func (c *Client) PruneCache(ctx context.Context) (int, error) {
	return c.prune(ctx, "/api/v1/cache/prune")
}

// PruneAudit asks the server to apply audit retention now.
func (c *Client) PruneAudit(ctx context.Context) (int, error) {
	return c.prune(ctx, "/api/v1/audit/prune")
}

func (c *Client) prune(ctx context.Context, path string) (int, error) {
	var out struct {
		Pruned int `json:"pruned"`
	}
	if err := c.post(ctx, path, struct{}{}, &out); err != nil {
		return 0, err
	}
	return out.Pruned, nil
}

// ValidateVIN checks a VIN on the server.
func (c *Client) ValidateVIN(ctx context.Context, v string) (*vin.Result, error) {
	var r vin.Result
	if err := c.post(ctx, "/api/v1/vin/validate", map[string]string{"vin": v}, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
