// Package apierror holds the JSON error envelopes of the gasolinera API.
// Every 4xx/5xx body a pump terminal sees goes through these types, so error
// handling on the client side stays uniform and raw SQL or stack detail never
// leaves the server.
package apierror

// APIError carries a single human-readable message in Spanish, ready to show
// at the till.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError reports per-field binding failures, keyed by the JSON
// field name.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
