package rpc

import (
	"fmt"

	"github.com/edgarrmondragon/citric-sub000/pkg/types"
)

// Response is the decoded result/error/id triple of one remote call. It is
// produced by a Codec from the raw transport payload and is read-only after
// decoding.
type Response struct {
	Result any                  `json:"result"`
	Error  types.NullableString `json:"error"`
	ID     int                  `json:"id"`
}

// OutcomeKind discriminates the classified shape of a response.
type OutcomeKind int

const (
	// OutcomeOK means the response carries a plain result.
	OutcomeOK OutcomeKind = iota
	// OutcomeStatus means the result is a status-shaped object. Whether that
	// is a failure depends on the call site; see Response.Validate.
	OutcomeStatus
	// OutcomeError means the top-level error field is non-null.
	OutcomeError
)

// Outcome is the tagged classification of a response. Status holds the status
// string for OutcomeStatus; Message holds the error text for OutcomeError.
type Outcome struct {
	Kind    OutcomeKind
	Status  string
	Message string
}

// Classify inspects a response and reports its shape. The status check takes
// priority over the error field: some failures surface as a status-shaped
// result while the error field stays null. Classification alone does not
// decide success; the platform overloads the status field for both success
// markers and embedded error text, and only the call site knows which status
// strings it legitimately expects.
func (r *Response) Classify() Outcome {
	if m, ok := r.Result.(map[string]any); ok {
		if v, present := m["status"]; present && v != nil {
			if s, ok := v.(string); ok {
				return Outcome{Kind: OutcomeStatus, Status: s}
			}
			return Outcome{Kind: OutcomeStatus, Status: fmt.Sprint(v)}
		}
	}
	if !r.Error.IsNil() {
		return Outcome{Kind: OutcomeError, Message: r.Error.Value}
	}
	return Outcome{Kind: OutcomeOK}
}

// Validate classifies the response and converts failure shapes into typed
// errors. okStatuses lists the status strings the caller treats as success;
// any other status becomes a *StatusError and a non-null error field becomes
// an *APIError. Returns nil when the response is a plain result or carries a
// benign status.
func (r *Response) Validate(okStatuses ...string) error {
	outcome := r.Classify()
	switch outcome.Kind {
	case OutcomeStatus:
		for _, ok := range okStatuses {
			if outcome.Status == ok {
				return nil
			}
		}
		return &StatusError{Status: outcome.Status, Response: r}
	case OutcomeError:
		return &APIError{Message: outcome.Message, Response: r}
	default:
		return nil
	}
}
