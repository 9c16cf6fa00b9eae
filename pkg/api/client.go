// Package api provides the high-level client for the LimeSurvey
// RemoteControl 2 API. It offers explicit wrappers for remote methods and
// simplifies common workflows (file import/export, participant management)
// on top of the raw RPC session.
package api

import (
	"context"

	"github.com/edgarrmondragon/citric-sub000/pkg/rpc"
)

// Client wraps an authenticated RPC session with convenience methods. Methods
// not covered by a wrapper remain reachable through Session or Method.
type Client struct {
	session *rpc.Session
}

// New creates a client on top of an open session. The caller keeps ownership
// of the session and its Close.
func New(session *rpc.Session) *Client {
	return &Client{session: session}
}

// Connect opens a session against endpoint and wraps it in a client. Close
// releases the session.
func Connect(ctx context.Context, endpoint string, username string, password string, opts ...rpc.SessionOption) (*Client, error) {
	session, err := rpc.Open(ctx, endpoint, username, password, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{session: session}, nil
}

// Session returns the underlying RPC session.
func (c *Client) Session() *rpc.Session {
	return c.session
}

// Method returns a dynamic proxy for dotted remote method names, e.g. for
// vendor-specific namespaces without an explicit wrapper.
func (c *Client) Method(name string) rpc.Method {
	return c.session.Method(name)
}

// Close releases the underlying session.
func (c *Client) Close(ctx context.Context) error {
	return c.session.Close(ctx)
}
