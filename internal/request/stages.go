package request

import (
	"fmt"
	"net/http"

	"github.com/myblog-dev/myblog/internal/session"
)

const bearerPrefix = "Bearer "

// RequestStage transforms an outgoing request before it is sent.
// A returned error rejects the call without sending anything.
type RequestStage func(req *http.Request) (*http.Request, error)

// ResponseStage transforms a successful (2xx) response before it is decoded.
// A returned error rejects the call.
type ResponseStage func(resp *Response) (*Response, error)

// JSONContentType sets the default JSON content type unless the caller set one
func JSONContentType() RequestStage {
	return func(req *http.Request) (*http.Request, error) {
		if req.Header.Get("Content-Type") == "" {
			req.Header.Set("Content-Type", "application/json")
		}
		return req, nil
	}
}

// BearerAuth attaches the persisted session token, if any.
// The store is read on every call; an absent token leaves the request unmodified.
func BearerAuth(store session.Store) RequestStage {
	return func(req *http.Request) (*http.Request, error) {
		token, err := store.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read session token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", bearerPrefix+token)
		}
		return req, nil
	}
}
