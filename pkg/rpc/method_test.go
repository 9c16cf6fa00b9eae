package rpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodProxy(t *testing.T) {
	t.Run("ChainingExtendsWithoutInvoking", func(t *testing.T) {
		invocations := 0
		caller := func(_ context.Context, method string, args ...any) (any, error) {
			invocations++
			return nil, nil
		}

		root := NewMethod(caller, "a")
		chained := root.Get("b").Get("c")
		assert.Equal(t, "a.b.c", chained.Name())
		assert.Equal(t, 0, invocations)

		// The root is unchanged; every Get produced a new value.
		assert.Equal(t, "a", root.Name())
	})

	t.Run("CallPassesAccumulatedNameAndArgs", func(t *testing.T) {
		var gotMethod string
		var gotArgs []any
		caller := func(_ context.Context, method string, args ...any) (any, error) {
			gotMethod = method
			gotArgs = args
			return "dispatched", nil
		}

		result, err := NewMethod(caller, "a").Get("b").Get("c").Call(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Equal(t, "dispatched", result)
		assert.Equal(t, "a.b.c", gotMethod)
		assert.Equal(t, []any{1, 2}, gotArgs)
	})

	t.Run("SessionMethodDispatchesThroughCall", func(t *testing.T) {
		codec := newRecordingCodec()
		s := openTestSession(t, codec)

		_, err := s.Method("cint").Get("custom").Call(context.Background(), "x")
		require.NoError(t, err)

		call := codec.calls[len(codec.calls)-1]
		assert.Equal(t, "cint.custom", call.method)
		assert.Equal(t, []any{"secret-key", "x"}, call.params)
	})
}
