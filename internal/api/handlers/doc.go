// Package handlers implements the HTTP API of vehicle-valuator. Operations
// are registered on a Huma API; probe endpoints are plain Echo handlers.
package handlers

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
