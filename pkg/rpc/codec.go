// Package rpc implements the low-level client for the LimeSurvey
// RemoteControl 2 API: wire codecs, response classification, the
// authenticated session, and a dynamic method proxy.
package rpc

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/edgarrmondragon/citric-sub000/internal/common/httpclient"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Codec encodes one remote procedure call into a transport payload and
// decodes the transport response into the result/error/id triple. A codec
// performs exactly one network round trip per invocation and never retries;
// retries, if any, belong to the transport.
type Codec interface {
	Invoke(ctx context.Context, endpoint string, method string, params []any, requestID int) (*Response, error)
}

// request is the structured-text call payload: method name, ordered
// positional parameters, and the request ID echoed back by the server.
type request struct {
	Method string `json:"method"`
	Params []any  `json:"params"`
	ID     int    `json:"id"`
}

// JSONCodec executes RemoteControl calls with a JSON payload. This is the
// default codec.
type JSONCodec struct {
	transport httpclient.Sender
}

// NewJSONCodec creates a JSON codec on top of the given transport. A nil
// transport gets a default one.
func NewJSONCodec(transport httpclient.Sender) *JSONCodec {
	if transport == nil {
		transport = httpclient.New()
	}
	return &JSONCodec{transport: transport}
}

// Invoke executes a single remote call. An empty response body means the RPC
// interface is disabled server-side and returns ErrInterfaceDisabled. A
// response ID differing from requestID returns ErrResponseIDMismatch.
func (c *JSONCodec) Invoke(ctx context.Context, endpoint string, method string, params []any, requestID int) (*Response, error) {
	if params == nil {
		params = []any{}
	}
	payload, err := json.Marshal(request{
		Method: method,
		Params: params,
		ID:     requestID,
	})
	if err != nil {
		return nil, ErrInvalidResponse.MsgErr("failed to encode request", err)
	}

	body, err := c.transport.Post(ctx, endpoint, "application/json", payload)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, ErrInterfaceDisabled
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, ErrInvalidResponse.Err(err)
	}
	if resp.ID != requestID {
		return nil, ErrResponseIDMismatch.Msg(
			fmt.Sprintf("ID %d in response does not match the one in the request %d", resp.ID, requestID))
	}
	return &resp, nil
}

var _ Codec = &JSONCodec{}
