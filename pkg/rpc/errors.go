package rpc

import (
	"github.com/edgarrmondragon/citric-sub000/internal/common/apperrors"
)

// Error families for the RemoteControl protocol. Match with errors.Is; the
// platform's own message is preserved verbatim on the typed errors below.
var (
	// ErrRPC is the base error for all RemoteControl failures.
	ErrRPC = apperrors.New("an error occurred while requesting data from the RemoteControl API")

	// ErrInterfaceDisabled is returned when the endpoint answers with an empty
	// body, the platform's signal that the RPC interface is turned off.
	ErrInterfaceDisabled = ErrRPC.New("RPC interface not enabled")

	// ErrResponseIDMismatch is returned when a response carries an ID other
	// than the one sent with the request.
	ErrResponseIDMismatch = ErrRPC.New("response ID does not match the request ID")

	// ErrInvalidResponse is returned when the response body cannot be decoded
	// into the result/error/id triple.
	ErrInvalidResponse = ErrRPC.New("invalid RPC response")

	// ErrSessionClosed is returned when a call is made on a closed session.
	ErrSessionClosed = ErrRPC.New("session is closed")

	// ErrStatus is the base for status-shaped failures (see StatusError).
	ErrStatus = ErrRPC.New("server responded with an error status")

	// ErrAPI is the base for non-null error fields (see APIError).
	ErrAPI = ErrRPC.New("server responded with an error")
)

// StatusError is returned when a result payload carries a status string the
// call site did not declare as benign. The status text comes from the platform
// unmodified.
type StatusError struct {
	Status   string
	Response *Response
}

// Error returns the platform's status string.
func (e *StatusError) Error() string {
	return e.Status
}

// Unwrap makes StatusError match ErrStatus and ErrRPC under errors.Is.
func (e *StatusError) Unwrap() error {
	return ErrStatus
}

// APIError is returned when the top-level error field of a response is
// non-null. The message comes from the platform unmodified.
type APIError struct {
	Message  string
	Response *Response
}

// Error returns the platform's error message.
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap makes APIError match ErrAPI and ErrRPC under errors.Is.
func (e *APIError) Unwrap() error {
	return ErrAPI
}
