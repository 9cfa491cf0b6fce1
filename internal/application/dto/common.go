package dto

// Response statuses of the API envelope.
const (
	StatusSuccess = "Success"
	StatusFailure = "Failure"
	StatusError   = "Error"
)

// APIResponse is the JSON envelope returned by every JSON endpoint.
type APIResponse struct {
	Status     string       `json:"status"`
	StatusCode int          `json:"statusCode"`
	Message    string       `json:"message"`
	FileName   string       `json:"fileName,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
}

// FieldError one failed check: the field path and the configured message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HealthResponse body for GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
