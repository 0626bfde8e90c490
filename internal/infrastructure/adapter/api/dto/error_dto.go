package dto

// ErrorResponse is the body of every non-2xx API response. Code is the
// domain error code, not the HTTP status.
type ErrorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}
