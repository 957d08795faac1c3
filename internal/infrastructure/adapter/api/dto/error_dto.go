package dto

// ErrorResponse is the uniform error body every endpoint answers with.
// Code carries the domain error code, not the HTTP status.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
