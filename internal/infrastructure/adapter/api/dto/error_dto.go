package dto

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// RetryAfterMs is set only for rate-limited responses
	RetryAfterMs int64 `json:"retryAfterMs,omitempty"`
}
