package apiclient

import "net/http"

// FieldError is a single field-level validation problem from the backend.
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

// APIError is the normalized failure shape every endpoint returns: the
// server's error payload when one could be decoded, otherwise the transport
// error's message. Status is zero when no response was received at all.
type APIError struct {
	Status  int          `json:"-"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status != 0 {
		return http.StatusText(e.Status)
	}
	return "request failed"
}

// IsUnauthorized reports whether the error carries an HTTP 401 status.
func (e *APIError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}
