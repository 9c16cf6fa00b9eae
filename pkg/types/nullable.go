// Package types provides nullable scalar types for protocol payloads where
// null carries meaning distinct from the zero value.
package types

// Nullable is implemented by types that can represent an explicit null.
type Nullable interface {
	// IsNil returns true if the value is null.
	IsNil() bool
}
