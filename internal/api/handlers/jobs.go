package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// JobsProvider lists scheduler job history.
type JobsProvider interface {
	ListLatestJobRuns(ctx context.Context) ([]domain.JobRun, error)
}

// Pruner runs the maintenance jobs on demand.
type Pruner interface {
	PruneCache(ctx context.Context) (int, error)
	PruneAudit(ctx context.Context) (int, error)
}

// JobsHandler exposes scheduler history and manual maintenance triggers.
type JobsHandler struct {
	store  JobsProvider
	pruner Pruner
}

// NewJobsHandler creates a new JobsHandler.
func NewJobsHandler(s JobsProvider, p Pruner) *JobsHandler {
	return &JobsHandler{store: s, pruner: p}
}

// ListJobsOutput is the latest run of each scheduled job.
type ListJobsOutput struct {
	Body []domain.JobRun
}

// PruneOutput reports how many rows a prune removed.
type PruneOutput struct {
	Body struct {
		Pruned int `json:"pruned" example:"12" doc:"Rows removed"`
	}
}

// ListJobs returns the most recent run for each scheduled job.
func (h *JobsHandler) ListJobs(ctx context.Context, _ *struct{}) (*ListJobsOutput, error) {
	runs, err := h.store.ListLatestJobRuns(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing jobs failed: " + err.Error())
	}
	if runs == nil {
		runs = []domain.JobRun{}
	}
	return &ListJobsOutput{Body: runs}, nil
}

// PruneCache removes expired listing cache entries.
func (h *JobsHandler) PruneCache(ctx context.Context, _ *struct{}) (*PruneOutput, error) {
	return prune(ctx, "cache", h.pruner.PruneCache)
}

// PruneAudit applies audit retention immediately.
func (h *JobsHandler) PruneAudit(ctx context.Context, _ *struct{}) (*PruneOutput, error) {
	return prune(ctx, "audit", h.pruner.PruneAudit)
}

func prune(ctx context.Context, what string, fn func(context.Context) (int, error)) (*PruneOutput, error) {
	n, err := fn(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError(what + " prune failed: " + err.Error())
	}
	resp := &PruneOutput{}
	resp.Body.Pruned = n
	return resp, nil
}

// RegisterJobRoutes registers scheduler and maintenance endpoints with the
// Huma API.
func RegisterJobRoutes(api huma.API, h *JobsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-jobs",
		Method:      http.MethodGet,
		Path:        "/api/v1/jobs",
		Summary:     "List latest scheduler job runs",
		Description: "Returns the most recent run record for each scheduled job.",
		Tags:        []string{"scheduler"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListJobs)

	huma.Register(api, huma.Operation{
		OperationID: "prune-cache",
		Method:      http.MethodPost,
		Path:        "/api/v1/cache/prune",
		Summary:     "Prune the listing cache",
		Description: "Deletes expired listing cache entries now instead of waiting for the scheduler.",
		Tags:        []string{"scheduler"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.PruneCache)

	huma.Register(api, huma.Operation{
		OperationID: "prune-audit",
		Method:      http.MethodPost,
		Path:        "/api/v1/audit/prune",
		Summary:     "Apply audit retention",
		Description: "Deletes audit records older than the configured retention window.",
		Tags:        []string{"scheduler"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.PruneAudit)
}
