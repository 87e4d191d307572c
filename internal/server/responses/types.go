// Package responses defines JSON payloads returned by the HTTP API that are
// not post data themselves.
package responses

import "time"

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Posts     int       `json:"posts"`
	Timestamp time.Time `json:"timestamp"`
}

// PostIDsResponse lists every post id, newest first.
type PostIDsResponse struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}
