package rpc

import (
	"context"

	"github.com/rs/zerolog"
)

// Reserved method names of the session lifecycle. get_session_key is the only
// call that goes out without a token.
const (
	methodGetSessionKey     = "get_session_key"
	methodReleaseSessionKey = "release_session_key"
)

// StatusOK is the only status string that is globally safe to treat as
// success. Operations expecting other benign statuses must declare them via
// CallWith.
const StatusOK = "OK"

// DefaultRequestID is the correlation value sent with every request. The
// protocol echoes it back; there is no per-call counter.
const DefaultRequestID = 1

type sessionState int

const (
	stateUnopened sessionState = iota
	stateOpen
	stateClosed
)

// Session is an authenticated connection to the RemoteControl endpoint. It
// owns the session key and injects it into every call. A Session is not safe
// for concurrent use; callers must serialize access.
type Session struct {
	endpoint  string
	codec     Codec
	key       string
	state     sessionState
	requestID int
	logger    zerolog.Logger
}

// SessionOption configures a Session before the login call is made.
type SessionOption func(*Session)

// WithCodec selects the wire codec. The default is a JSONCodec over a plain
// transport.
func WithCodec(codec Codec) SessionOption {
	return func(s *Session) {
		s.codec = codec
	}
}

// WithLogger sets the structured logger for the session.
func WithLogger(logger zerolog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithRequestID overrides the correlation ID sent with every request.
func WithRequestID(id int) SessionOption {
	return func(s *Session) {
		s.requestID = id
	}
}

// Open performs the login call and returns an open session holding the
// key. A login rejected by the platform surfaces as *StatusError or
// *APIError and leaves no session behind.
func Open(ctx context.Context, endpoint string, username string, password string, opts ...SessionOption) (*Session, error) {
	s := &Session{
		endpoint:  endpoint,
		requestID: DefaultRequestID,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.codec == nil {
		s.codec = NewJSONCodec(nil)
	}

	resp, err := s.codec.Invoke(ctx, endpoint, methodGetSessionKey, []any{username, password}, s.requestID)
	if err != nil {
		return nil, err
	}
	if err := resp.Validate(StatusOK); err != nil {
		return nil, err
	}
	key, ok := resp.Result.(string)
	if !ok {
		return nil, ErrInvalidResponse.Msg("session key is not a string")
	}

	s.key = key
	s.state = stateOpen
	s.logger.Debug().Str("endpoint", endpoint).Msg("session opened")
	return s, nil
}

// Call executes a remote method with the session key prepended to args. A
// status-shaped result counts as success only when the status is "OK"; use
// CallWith for operations that legitimately return other statuses.
func (s *Session) Call(ctx context.Context, method string, args ...any) (any, error) {
	return s.CallWith(ctx, method, []string{StatusOK}, args...)
}

// CallWith executes a remote method like Call, treating any status string in
// okStatuses as success. This is the opt-out path for the platform's
// overloaded status field.
func (s *Session) CallWith(ctx context.Context, method string, okStatuses []string, args ...any) (any, error) {
	if s.state != stateOpen {
		return nil, ErrSessionClosed
	}

	params := make([]any, 0, len(args)+1)
	params = append(params, s.key)
	params = append(params, args...)

	s.logger.Debug().Str("method", method).Int("request_id", s.requestID).Msg("invoking remote method")

	resp, err := s.codec.Invoke(ctx, s.endpoint, method, params, s.requestID)
	if err != nil {
		return nil, err
	}
	if err := resp.Validate(okStatuses...); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// Method returns a proxy rooted at name, for reaching remote methods not
// covered by an explicit wrapper, including vendor-specific dotted
// namespaces.
func (s *Session) Method(name string) Method {
	return NewMethod(s.Call, name)
}

// Closed reports whether the session has been closed.
func (s *Session) Closed() bool {
	return s.state == stateClosed
}

// Close releases the session key on the server and marks the session closed.
// Closing an already closed session is a no-op. The key is cleared even when
// the release call fails.
func (s *Session) Close(ctx context.Context) error {
	if s.state != stateOpen {
		return nil
	}
	_, err := s.CallWith(ctx, methodReleaseSessionKey, []string{StatusOK})
	s.key = ""
	s.state = stateClosed
	s.logger.Debug().Msg("session closed")
	return err
}

// WithSession opens a session, hands it to fn, and guarantees exactly one
// Close on every exit path. fn's error takes precedence over a close error.
func WithSession(ctx context.Context, endpoint string, username string, password string, fn func(*Session) error, opts ...SessionOption) (err error) {
	s, err := Open(ctx, endpoint, username, password, opts...)
	if err != nil {
		return err
	}
	defer func() {
		cerr := s.Close(ctx)
		if err == nil {
			err = cerr
		}
	}()
	return fn(s)
}
