package types

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	// Catalog models in load order.
	Models []Model `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: no eligible peer
	Error string `json:"error" example:"no eligible peer"`
	// HTTP status code.
	// example: 503
	Code int `json:"code" example:"503"`
}
