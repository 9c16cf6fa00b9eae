// Package apperrors provides the error type underlying the client's error
// taxonomy. It implements the standard error interface while adding error
// chaining, so call sites can match broad error families with errors.Is and
// still read the platform's verbatim message.
package apperrors

// Error defines the interface for client errors. It extends the standard error
// interface with methods for error wrapping and message derivation. Methods
// return Error to support chaining.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // creates a new error using current as template
	Msg(msg string) Error                  // creates a new error with message and wraps original
	MsgErr(msg string, err ...error) Error // creates error with message and wraps extra errors
	Err(err ...error) Error                // attaches additional errors to current error
	UnwrapAll() []error                    // returns all wrapped errors
}
