package types

// MessageResponse is the body of write endpoints that have nothing else to
// return.
type MessageResponse struct {
	Message string `json:"message"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
