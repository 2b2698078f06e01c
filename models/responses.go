package models

// ErrorResponse is the JSON body returned for every failed request:
// a stable machine-readable code plus a human-readable message.
// Internal causes are logged server-side and never leak into Message.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FieldError describes one input-validation failure. Validation errors are
// collected, not fail-fast, so a response may carry several of them.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationProblem is the JSON body returned when request validation
// fails. Errors always holds at least one entry.
type ValidationProblem struct {
	Code   string       `json:"code"`
	Errors []FieldError `json:"errors"`
}
