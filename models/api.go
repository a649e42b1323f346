package models

// ProductResponse is the response for GET /api/v1/products/:id.
type ProductResponse struct {
	Success bool         `json:"success"`
	Product *Product     `json:"product,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// SearchResponse is the response for GET /api/v1/search.
type SearchResponse struct {
	Success bool `json:"success"`

	// Query echoes the requested keywords.
	Query string `json:"query,omitempty"`

	// Page and LastPage reflect the most recently extracted page. For a
	// full traversal Page is 1 and LastPage the total page count.
	Page     int `json:"page,omitempty"`
	LastPage int `json:"last_page,omitempty"`

	Count    int          `json:"count"`
	Products []Product    `json:"products"`
	Error    *ErrorDetail `json:"error,omitempty"`
}

// ErrorResponse is the envelope for failed API calls that carry no payload.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Driver  string `json:"driver"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
