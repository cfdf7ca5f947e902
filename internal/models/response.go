package models

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the body shape of every JSON response: {status, message, data}.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the error flavour of Envelope.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewErrorResponse builds an ErrorResponse with the error status filled in.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Status: StatusError, Message: message}
}

// AuthResponse is returned by register/login: the credential plus a public profile.
type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}
