package types

import "encoding/json"

// NullableString represents a string that may be JSON null. The RemoteControl
// protocol uses null error fields to signal success, so an empty string and a
// null must stay distinguishable after decoding.
type NullableString struct {
	Value string
	Valid bool // Valid is false when the wire value was null
}

// String returns the string value, or an empty string when null.
func (ns NullableString) String() string {
	if ns.Valid {
		return ns.Value
	}
	return ""
}

// IsNil reports whether the value was null on the wire.
func (ns NullableString) IsNil() bool {
	return !ns.Valid
}

// Set assigns a value and marks it as non-null.
func (ns *NullableString) Set(value string) {
	ns.Value = value
	ns.Valid = true
}

// MarshalJSON encodes the value, or null when not valid.
func (ns NullableString) MarshalJSON() ([]byte, error) {
	if ns.Valid {
		return json.Marshal(ns.Value)
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes a string or null.
func (ns *NullableString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		ns.Value = ""
		ns.Valid = false
		return nil
	}
	ns.Valid = true
	return json.Unmarshal(data, &ns.Value)
}

// NullableStringFrom creates a valid NullableString holding s.
func NullableStringFrom(s string) NullableString {
	return NullableString{Value: s, Valid: true}
}

// NullString creates a NullableString representing null.
func NullString() NullableString {
	return NullableString{}
}

var _ json.Marshaler = NullableString{}
var _ json.Unmarshaler = &NullableString{}
var _ Nullable = NullableString{}
