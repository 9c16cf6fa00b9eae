package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableStringUnmarshal(t *testing.T) {
	var ns NullableString
	require.NoError(t, json.Unmarshal([]byte(`"Invalid session key"`), &ns))
	assert.True(t, ns.Valid)
	assert.Equal(t, "Invalid session key", ns.Value)
	assert.False(t, ns.IsNil())

	var null NullableString
	require.NoError(t, json.Unmarshal([]byte(`null`), &null))
	assert.False(t, null.Valid)
	assert.True(t, null.IsNil())
}

func TestNullableStringEmptyIsNotNull(t *testing.T) {
	var ns NullableString
	require.NoError(t, json.Unmarshal([]byte(`""`), &ns))
	assert.True(t, ns.Valid)
	assert.False(t, ns.IsNil())
}

func TestNullableStringMarshal(t *testing.T) {
	out, err := json.Marshal(NullableStringFrom("hello"))
	require.NoError(t, err)
	assert.Equal(t, `"hello"`, string(out))

	out, err = json.Marshal(NullString())
	require.NoError(t, err)
	assert.Equal(t, `null`, string(out))
}
