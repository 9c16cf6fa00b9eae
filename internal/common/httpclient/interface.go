// Package httpclient provides the HTTP transport used by the RPC and REST
// clients. It handles request building, response reading, bearer token
// injection, and optional retry of failed exchanges. Protocol-level error
// conventions are out of scope; callers interpret the returned body.
package httpclient

import "context"

// Sender defines the transport capability consumed by the protocol layers:
// send one request, get the raw response body back. Implementations must not
// interpret the body.
type Sender interface {
	// Post sends body to url with the given content type and returns the raw
	// response body. An empty body with a 200 status is returned as-is.
	Post(ctx context.Context, url string, contentType string, body []byte) ([]byte, error)

	// DoRequest makes a request against baseURL with the given options.
	// Returns the raw response body.
	DoRequest(ctx context.Context, baseURL string, opts RequestOptions) ([]byte, error)
}

// Verify that Transport implements the Sender interface.
var _ Sender = &Transport{}
