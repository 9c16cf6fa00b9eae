package api

import (
	"encoding/base64"
	"errors"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/edgarrmondragon/citric-sub000/pkg/rpc"
)

// rpcInvalidShape flags a result whose shape does not match the wrapper's
// expectation.
func rpcInvalidShape(msg string) error {
	return rpc.ErrInvalidResponse.Msg(msg)
}

// asStatusError extracts a *rpc.StatusError from an error chain.
func asStatusError(err error) (*rpc.StatusError, bool) {
	var statusErr *rpc.StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// yesNo converts a boolean to the platform's single-character flag marker.
func yesNo(v bool) string {
	if v {
		return "Y"
	}
	return "N"
}

// Participant is the data of one survey participant. Extra attribute fields
// merge into the flat participant record the platform expects.
type Participant struct {
	FirstName     string
	LastName      string
	Email         string
	ParticipantID uuid.UUID
	Language      string
	Blacklisted   bool
	Attributes    map[string]any
}

// ToMap flattens the participant into the record shape of add_participants.
// An unset language defaults to "en" and a zero participant ID is sent as
// null so the platform assigns one.
func (p Participant) ToMap() map[string]any {
	language := p.Language
	if language == "" {
		language = "en"
	}
	record := map[string]any{
		"firstname":   p.FirstName,
		"lastname":    p.LastName,
		"email":       p.Email,
		"language":    language,
		"blacklisted": yesNo(p.Blacklisted),
	}
	if p.ParticipantID != uuid.Nil {
		record["participant_id"] = p.ParticipantID.String()
	} else {
		record["participant_id"] = nil
	}
	for k, v := range p.Attributes {
		record[k] = v
	}
	return record
}

// Survey is the typed view of one list_surveys entry.
type Survey struct {
	ID        int    `mapstructure:"sid"`
	Title     string `mapstructure:"surveyls_title"`
	StartDate string `mapstructure:"startdate"`
	Expires   string `mapstructure:"expires"`
	Active    string `mapstructure:"active"`
}

// decodeList decodes a list-of-records RPC result into a typed slice. The
// platform sends numbers as strings in several listings, so decoding is
// weakly typed.
func decodeList[T any](result any) ([]T, error) {
	items, ok := result.([]any)
	if !ok {
		return nil, rpcInvalidShape("expected a list result")
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var decoded T
		cfg := &mapstructure.DecoderConfig{
			Result:           &decoded,
			WeaklyTypedInput: true,
		}
		dec, err := mapstructure.NewDecoder(cfg)
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(item); err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}
	return out, nil
}

// asMap narrows an RPC result to a record.
func asMap(result any) (map[string]any, error) {
	m, ok := result.(map[string]any)
	if !ok {
		return nil, rpcInvalidShape("expected an object result")
	}
	return m, nil
}

// asString narrows an RPC result to a string.
func asString(result any) (string, error) {
	s, ok := result.(string)
	if !ok {
		return "", rpcInvalidShape("expected a string result")
	}
	return s, nil
}

// asInt narrows an RPC result to an integer. The platform sends IDs as JSON
// numbers or numeric strings depending on the operation.
func asInt(result any) (int, error) {
	switch v := result.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, rpcInvalidShape("expected a numeric result")
		}
		return n, nil
	default:
		return 0, rpcInvalidShape("expected a numeric result")
	}
}

// asMapList narrows an RPC result to a list of records.
func asMapList(result any) ([]map[string]any, error) {
	items, ok := result.([]any)
	if !ok {
		return nil, rpcInvalidShape("expected a list result")
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, rpcInvalidShape("expected a list of objects")
		}
		out = append(out, m)
	}
	return out, nil
}

// writeBase64 decodes a base64 string result and writes it to w, returning
// the number of decoded bytes written.
func writeBase64(w io.Writer, result any) (int, error) {
	encoded, err := asString(result)
	if err != nil {
		return 0, err
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return 0, rpcInvalidShape("result is not valid base64")
	}
	return w.Write(decoded)
}

// asStringFromNumber renders a JSON number as its shortest decimal string.
func asStringFromNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// decodeBase64Field decodes a base64 string stored under key in a record.
func decodeBase64Field(record map[string]any, key string) ([]byte, error) {
	encoded, ok := record[key].(string)
	if !ok {
		return nil, rpcInvalidShape("expected a base64 field " + key)
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, rpcInvalidShape("field " + key + " is not valid base64")
	}
	return decoded, nil
}

// anyOrNil turns an optional string slice into an RPC argument, sending null
// when empty.
func anyOrNil(values []string) any {
	if len(values) == 0 {
		return nil
	}
	return values
}

// stringOrNil turns an optional string into an RPC argument, sending null
// when empty.
func stringOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
