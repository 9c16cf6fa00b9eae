// Package rest provides a client for the LimeSurvey REST API, the newer
// sibling of the RemoteControl 2 interface. The API is still in early
// development upstream and so is this client surface.
package rest

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/edgarrmondragon/citric-sub000/internal/common/apperrors"
	"github.com/edgarrmondragon/citric-sub000/internal/common/httpclient"
	"github.com/edgarrmondragon/citric-sub000/internal/common/logtrace"
)

const authPath = "/rest/v1/auth"

// ErrREST is the base error for REST client failures.
var ErrREST = apperrors.New("rest request failed")

// ErrBadPayload indicates a response body without the expected fields.
var ErrBadPayload = ErrREST.New("unexpected response payload")

// Client talks to the REST API of one LimeSurvey server. It holds the bearer
// token obtained at construction and injects it into every request.
type Client struct {
	transport httpclient.Sender
	baseURL   string
	token     string
	logger    zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithTransport replaces the HTTP transport.
func WithTransport(t httpclient.Sender) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New authenticates against the server and returns a ready client. Close
// deletes the server-side session.
func New(ctx context.Context, baseURL string, username string, password string, opts ...Option) (*Client, error) {
	c := &Client{
		transport: httpclient.New(),
		baseURL:   baseURL,
		logger:    logtrace.Disabled(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.authenticate(ctx, username, password); err != nil {
		return nil, err
	}
	return c, nil
}

// Token returns the current bearer token. Empty after Close.
func (c *Client) Token() string {
	return c.token
}

func (c *Client) authenticate(ctx context.Context, username string, password string) error {
	body, err := sjson.SetBytes([]byte(`{}`), "username", username)
	if err != nil {
		return ErrREST.Err(err)
	}
	body, err = sjson.SetBytes(body, "password", password)
	if err != nil {
		return ErrREST.Err(err)
	}

	resp, err := c.transport.DoRequest(ctx, c.baseURL, httpclient.RequestOptions{
		Method: "POST",
		Path:   authPath,
		Body:   body,
	})
	if err != nil {
		return ErrREST.Err(err)
	}
	return c.setToken(resp)
}

// RefreshToken exchanges the current token for a fresh one.
func (c *Client) RefreshToken(ctx context.Context) error {
	resp, err := c.transport.DoRequest(ctx, c.baseURL, httpclient.RequestOptions{
		Method: "PUT",
		Path:   authPath,
		Token:  c.token,
	})
	if err != nil {
		return ErrREST.Err(err)
	}
	return c.setToken(resp)
}

func (c *Client) setToken(resp []byte) error {
	token := gjson.GetBytes(resp, "token")
	if !token.Exists() || token.Type != gjson.String {
		return ErrBadPayload.Msg("missing session token")
	}
	c.token = token.String()
	c.logger.Debug().Msg("session token acquired")
	return nil
}

// Close deletes the server-side session and clears the token. Calling Close
// on an already closed client is a no-op.
func (c *Client) Close(ctx context.Context) error {
	if c.token == "" {
		return nil
	}
	_, err := c.transport.DoRequest(ctx, c.baseURL, httpclient.RequestOptions{
		Method: "DELETE",
		Path:   authPath,
		Token:  c.token,
	})
	c.token = ""
	if err != nil {
		return ErrREST.Err(err)
	}
	return nil
}

// GetSurveys returns all surveys visible to the authenticated user.
func (c *Client) GetSurveys(ctx context.Context) ([]map[string]any, error) {
	resp, err := c.transport.DoRequest(ctx, c.baseURL, httpclient.RequestOptions{
		Method: "GET",
		Path:   "/rest/v1/survey",
		Token:  c.token,
	})
	if err != nil {
		return nil, ErrREST.Err(err)
	}

	surveys := gjson.GetBytes(resp, "surveys")
	if !surveys.IsArray() {
		return nil, ErrBadPayload.Msg("missing surveys list")
	}
	var out []map[string]any
	surveys.ForEach(func(_, value gjson.Result) bool {
		if m, ok := value.Value().(map[string]any); ok {
			out = append(out, m)
		}
		return true
	})
	return out, nil
}

// GetSurveyDetails returns the full detail record of one survey.
func (c *Client) GetSurveyDetails(ctx context.Context, surveyID int) (map[string]any, error) {
	resp, err := c.transport.DoRequest(ctx, c.baseURL, httpclient.RequestOptions{
		Method: "GET",
		Path:   "/rest/v1/survey-detail/" + strconv.Itoa(surveyID),
		Token:  c.token,
	})
	if err != nil {
		return nil, ErrREST.Err(err)
	}

	survey := gjson.GetBytes(resp, "survey")
	m, ok := survey.Value().(map[string]any)
	if !ok {
		return nil, ErrBadPayload.Msg("missing survey record")
	}
	return m, nil
}

// PatchOperation is one entry of a survey-detail patch request.
type PatchOperation struct {
	Entity string         `json:"entity"`
	Op     string         `json:"op"`
	ID     any            `json:"id"`
	Props  map[string]any `json:"props"`
}

// PatchSurveyDetails applies the given operations to a survey and returns the
// server's result document.
func (c *Client) PatchSurveyDetails(ctx context.Context, surveyID int, ops []PatchOperation) (map[string]any, error) {
	body, err := sjson.SetBytes([]byte(`{}`), "patch", ops)
	if err != nil {
		return nil, ErrREST.Err(err)
	}

	resp, err := c.transport.DoRequest(ctx, c.baseURL, httpclient.RequestOptions{
		Method: "PATCH",
		Path:   "/rest/v1/survey-detail/" + strconv.Itoa(surveyID),
		Body:   body,
		Token:  c.token,
	})
	if err != nil {
		return nil, ErrREST.Err(err)
	}

	result, ok := gjson.ParseBytes(resp).Value().(map[string]any)
	if !ok {
		return nil, ErrBadPayload.Msg("expected an object result")
	}
	return result, nil
}

// UpdateSurveyDetails updates properties of one survey through a single
// update operation.
func (c *Client) UpdateSurveyDetails(ctx context.Context, surveyID int, props map[string]any) (map[string]any, error) {
	return c.PatchSurveyDetails(ctx, surveyID, []PatchOperation{
		{Entity: "survey", Op: "update", ID: surveyID, Props: props},
	})
}
