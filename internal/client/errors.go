package client

import "errors"

// NetworkErrorMessage is the fixed message surfaced when no response
// came back at all.
const NetworkErrorMessage = "Network error. Please check your internet connection."

// APIError is a request the server received and rejected. Its message
// is surfaced to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// NetworkError is a request that got no usable response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return NetworkErrorMessage }

func (e *NetworkError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is a 401 rejection, which
// invalidates the cached session.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}
