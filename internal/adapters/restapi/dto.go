// Package restapi implements the status API: health, registry view and Prometheus metrics.
package restapi

// ErrorResponse defines a standard structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse defines the structure for the GET /health endpoint.
type HealthResponse struct {
	Status        string `json:"status"`
	Detector      string `json:"detector"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// RegistryResponse defines the structure for the GET /registry/{category} endpoint.
type RegistryResponse struct {
	Category  string   `json:"category"`
	Count     int      `json:"count"`
	Addresses []string `json:"addresses"`
}
