package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is an application-level failure: the server replied with an
// envelope whose success flag is false.
type APIError struct {
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	return e.Message
}

// StatusError means the server answered with a non-2xx status
type StatusError struct {
	StatusCode int
	Method     string
	URL        string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// ServerMessage returns the envelope message carried by the error body, if any
func (e *StatusError) ServerMessage() string {
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &env); err != nil {
		return ""
	}
	return env.Message
}

// NetworkError means the request was sent but no response arrived,
// including the per-request timeout expiring.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: no response: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// LocalError means the request was never dispatched (bad configuration,
// unencodable body, failing request stage) or its reply could not be decoded.
type LocalError struct {
	Err error
}

func (e *LocalError) Error() string { return e.Err.Error() }

func (e *LocalError) Unwrap() error { return e.Err }

// Notified reports whether err is a pipeline failure, which the pipeline has
// already shown to the user.
func Notified(err error) bool {
	var (
		apiErr    *APIError
		statusErr *StatusError
		netErr    *NetworkError
		localErr  *LocalError
	)
	return errors.As(err, &apiErr) ||
		errors.As(err, &statusErr) ||
		errors.As(err, &netErr) ||
		errors.As(err, &localErr)
}
