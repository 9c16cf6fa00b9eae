package rpc

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgarrmondragon/citric-sub000/pkg/types"
)

// recordingCodec is an in-memory Codec capturing every invocation and serving
// canned responses per method name.
type recordingCodec struct {
	calls     []recordedCall
	responses map[string]*Response
}

type recordedCall struct {
	endpoint  string
	method    string
	params    []any
	requestID int
}

func newRecordingCodec() *recordingCodec {
	return &recordingCodec{responses: map[string]*Response{
		methodGetSessionKey:     {Result: "secret-key", ID: DefaultRequestID},
		methodReleaseSessionKey: {Result: "OK", ID: DefaultRequestID},
	}}
}

func (c *recordingCodec) Invoke(_ context.Context, endpoint string, method string, params []any, requestID int) (*Response, error) {
	c.calls = append(c.calls, recordedCall{endpoint: endpoint, method: method, params: params, requestID: requestID})
	if resp, ok := c.responses[method]; ok {
		return resp, nil
	}
	return &Response{Result: "result of " + method, ID: requestID}, nil
}

func (c *recordingCodec) countCalls(method string) int {
	n := 0
	for _, call := range c.calls {
		if call.method == method {
			n++
		}
	}
	return n
}

func openTestSession(t *testing.T, codec Codec) *Session {
	t.Helper()
	s, err := Open(context.Background(), "http://example.com/admin/remotecontrol", "admin", "pass", WithCodec(codec))
	require.NoError(t, err)
	return s
}

func TestOpen(t *testing.T) {
	t.Run("LoginStoresKey", func(t *testing.T) {
		codec := newRecordingCodec()
		s := openTestSession(t, codec)

		require.Len(t, codec.calls, 1)
		login := codec.calls[0]
		assert.Equal(t, methodGetSessionKey, login.method)
		assert.Equal(t, []any{"admin", "pass"}, login.params)
		assert.Equal(t, DefaultRequestID, login.requestID)
		assert.False(t, s.Closed())
	})

	t.Run("RejectedLogin", func(t *testing.T) {
		codec := newRecordingCodec()
		codec.responses[methodGetSessionKey] = &Response{
			Result: map[string]any{"status": "Invalid user name or password"},
			ID:     DefaultRequestID,
		}

		_, err := Open(context.Background(), "http://example.com", "admin", "wrong", WithCodec(codec))
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, "Invalid user name or password", statusErr.Status)
	})

	t.Run("NonStringKey", func(t *testing.T) {
		codec := newRecordingCodec()
		codec.responses[methodGetSessionKey] = &Response{Result: 42, ID: DefaultRequestID}

		_, err := Open(context.Background(), "http://example.com", "admin", "pass", WithCodec(codec))
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}

func TestSessionCall(t *testing.T) {
	t.Run("PrependsKey", func(t *testing.T) {
		codec := newRecordingCodec()
		s := openTestSession(t, codec)

		result, err := s.Call(context.Background(), "list_surveys", "username", 10)
		require.NoError(t, err)
		assert.Equal(t, "result of list_surveys", result)

		call := codec.calls[len(codec.calls)-1]
		assert.Equal(t, []any{"secret-key", "username", 10}, call.params)
	})

	t.Run("OKStatusResultPasses", func(t *testing.T) {
		codec := newRecordingCodec()
		codec.responses["activate_survey"] = &Response{
			Result: map[string]any{"status": "OK"},
			ID:     DefaultRequestID,
		}
		s := openTestSession(t, codec)

		result, err := s.Call(context.Background(), "activate_survey", 123)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"status": "OK"}, result)
	})

	t.Run("ErrorStatusRaises", func(t *testing.T) {
		codec := newRecordingCodec()
		codec.responses["activate_survey"] = &Response{
			Result: map[string]any{"status": "Invalid survey"},
			ID:     DefaultRequestID,
		}
		s := openTestSession(t, codec)

		_, err := s.Call(context.Background(), "activate_survey", 999)
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, "Invalid survey", statusErr.Error())
	})

	t.Run("APIErrorRaises", func(t *testing.T) {
		codec := newRecordingCodec()
		codec.responses["not_a_method"] = &Response{
			Error: types.NullableStringFrom("Some failure"),
			ID:    DefaultRequestID,
		}
		s := openTestSession(t, codec)

		_, err := s.Call(context.Background(), "not_a_method")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Some failure", apiErr.Error())
	})

	t.Run("CallWithBenignStatus", func(t *testing.T) {
		codec := newRecordingCodec()
		codec.responses["remind_participants"] = &Response{
			Result: map[string]any{"status": "0 left to send"},
			ID:     DefaultRequestID,
		}
		s := openTestSession(t, codec)

		result, err := s.CallWith(context.Background(), "remind_participants", []string{StatusOK, "0 left to send"}, 123)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"status": "0 left to send"}, result)
	})

	t.Run("CallAfterCloseFailsFast", func(t *testing.T) {
		codec := newRecordingCodec()
		s := openTestSession(t, codec)
		require.NoError(t, s.Close(context.Background()))

		_, err := s.Call(context.Background(), "list_surveys")
		assert.ErrorIs(t, err, ErrSessionClosed)
	})
}

func TestSessionClose(t *testing.T) {
	t.Run("ReleasesKeyOnce", func(t *testing.T) {
		codec := newRecordingCodec()
		s := openTestSession(t, codec)

		require.NoError(t, s.Close(context.Background()))
		require.NoError(t, s.Close(context.Background()))

		assert.Equal(t, 1, codec.countCalls(methodReleaseSessionKey))
		assert.True(t, s.Closed())
		assert.Empty(t, s.key)
	})

	t.Run("KeyClearedEvenWhenReleaseFails", func(t *testing.T) {
		codec := newRecordingCodec()
		codec.responses[methodReleaseSessionKey] = &Response{
			Error: types.NullableStringFrom("Invalid session key"),
			ID:    DefaultRequestID,
		}
		s := openTestSession(t, codec)

		err := s.Close(context.Background())
		assert.ErrorIs(t, err, ErrAPI)
		assert.True(t, s.Closed())
		assert.Empty(t, s.key)
	})
}

func TestWithSession(t *testing.T) {
	t.Run("ClosesOnNormalExit", func(t *testing.T) {
		codec := newRecordingCodec()
		var inside *Session
		err := WithSession(context.Background(), "http://example.com", "admin", "pass", func(s *Session) error {
			inside = s
			_, err := s.Call(context.Background(), "list_surveys")
			return err
		}, WithCodec(codec))
		require.NoError(t, err)

		assert.True(t, inside.Closed())
		assert.Equal(t, 1, codec.countCalls(methodReleaseSessionKey))
	})

	t.Run("ClosesExactlyOnceOnFailure", func(t *testing.T) {
		codec := newRecordingCodec()
		boom := errors.New("boom")
		var inside *Session
		err := WithSession(context.Background(), "http://example.com", "admin", "pass", func(s *Session) error {
			inside = s
			return boom
		}, WithCodec(codec))

		assert.ErrorIs(t, err, boom)
		assert.True(t, inside.Closed())
		assert.Equal(t, 1, codec.countCalls(methodReleaseSessionKey))
	})

	t.Run("FnErrorWinsOverCloseError", func(t *testing.T) {
		codec := newRecordingCodec()
		codec.responses[methodReleaseSessionKey] = &Response{
			Error: types.NullableStringFrom("Invalid session key"),
			ID:    DefaultRequestID,
		}
		boom := errors.New("boom")
		err := WithSession(context.Background(), "http://example.com", "admin", "pass", func(s *Session) error {
			return boom
		}, WithCodec(codec))
		assert.ErrorIs(t, err, boom)
	})
}
