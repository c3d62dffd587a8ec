// Package api defines shared HTTP response envelopes.
package api

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body returned for simple informational replies.
type MessageResponse struct {
	Message string `json:"message"`
}
