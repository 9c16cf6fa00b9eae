package rpc

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/edgarrmondragon/citric-sub000/internal/common/httpclient"
)

// XMLCodec executes RemoteControl calls with the legacy XML-RPC call format:
// positional parameters wrapped in methodCall/params/param/value elements.
// The invoke contract is identical to JSONCodec, so the two are swappable
// without changing the Session.
type XMLCodec struct {
	transport httpclient.Sender
}

// NewXMLCodec creates an XML-RPC codec on top of the given transport. A nil
// transport gets a default one.
func NewXMLCodec(transport httpclient.Sender) *XMLCodec {
	if transport == nil {
		transport = httpclient.New()
	}
	return &XMLCodec{transport: transport}
}

// Invoke executes a single remote call encoded as an XML-RPC methodCall.
// Empty bodies signal the disabled interface exactly as in the JSON variant.
// The XML-RPC response format carries no request ID, so mismatch detection
// only applies when the server answers with the JSON-shaped triple.
func (c *XMLCodec) Invoke(ctx context.Context, endpoint string, method string, params []any, requestID int) (*Response, error) {
	payload, err := marshalMethodCall(method, params)
	if err != nil {
		return nil, ErrInvalidResponse.MsgErr("failed to encode request", err)
	}

	body, err := c.transport.Post(ctx, endpoint, "application/xml", payload)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, ErrInterfaceDisabled
	}

	// The platform answers XML-RPC calls either with a methodResponse
	// document or with the same JSON triple the structured-text variant uses.
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '<' {
		return unmarshalMethodResponse(trimmed, requestID)
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, ErrInvalidResponse.Err(err)
	}
	if resp.ID != requestID {
		return nil, ErrResponseIDMismatch.Msg(
			fmt.Sprintf("ID %d in response does not match the one in the request %d", resp.ID, requestID))
	}
	return &resp, nil
}

// marshalMethodCall renders method and params as an XML-RPC methodCall
// document.
func marshalMethodCall(method string, params []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString("<methodCall><methodName>")
	if err := xml.EscapeText(&buf, []byte(method)); err != nil {
		return nil, err
	}
	buf.WriteString("</methodName><params>")
	for _, p := range params {
		buf.WriteString("<param>")
		if err := writeValue(&buf, p); err != nil {
			return nil, err
		}
		buf.WriteString("</param>")
	}
	buf.WriteString("</params></methodCall>")
	return buf.Bytes(), nil
}

// writeValue renders one positional parameter as an XML-RPC value element.
func writeValue(buf *bytes.Buffer, v any) error {
	buf.WriteString("<value>")
	defer buf.WriteString("</value>")

	switch val := v.(type) {
	case nil:
		buf.WriteString("<nil/>")
	case bool:
		b := "0"
		if val {
			b = "1"
		}
		buf.WriteString("<boolean>" + b + "</boolean>")
	case int:
		buf.WriteString("<int>" + strconv.Itoa(val) + "</int>")
	case int64:
		buf.WriteString("<int>" + strconv.FormatInt(val, 10) + "</int>")
	case float64:
		buf.WriteString("<double>" + strconv.FormatFloat(val, 'f', -1, 64) + "</double>")
	case string:
		buf.WriteString("<string>")
		if err := xml.EscapeText(buf, []byte(val)); err != nil {
			return err
		}
		buf.WriteString("</string>")
	case []any:
		buf.WriteString("<array><data>")
		for _, item := range val {
			if err := writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteString("</data></array>")
	case map[string]any:
		buf.WriteString("<struct>")
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			buf.WriteString("<member><name>")
			if err := xml.EscapeText(buf, []byte(k)); err != nil {
				return err
			}
			buf.WriteString("</name>")
			if err := writeValue(buf, val[k]); err != nil {
				return err
			}
			buf.WriteString("</member>")
		}
		buf.WriteString("</struct>")
	default:
		return fmt.Errorf("cannot encode parameter of type %T", v)
	}
	return nil
}

// unmarshalMethodResponse decodes an XML-RPC methodResponse document into the
// uniform triple. Faults become the error field; the request ID is assumed
// echoed because the format has no ID of its own.
func unmarshalMethodResponse(body []byte, requestID int) (*Response, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))

	var inFault bool
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ErrInvalidResponse.Err(err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "methodResponse", "params", "param":
			continue
		case "fault":
			inFault = true
		case "value":
			val, err := parseValue(dec, start)
			if err != nil {
				return nil, ErrInvalidResponse.Err(err)
			}
			resp := &Response{ID: requestID}
			if inFault {
				resp.Error.Set(faultMessage(val))
			} else {
				resp.Result = val
			}
			return resp, nil
		}
	}
	return nil, ErrInvalidResponse.Msg("methodResponse carries no value")
}

// faultMessage extracts the faultString from a decoded fault struct, falling
// back to a rendering of the whole value.
func faultMessage(val any) string {
	if m, ok := val.(map[string]any); ok {
		if s, ok := m["faultString"].(string); ok {
			return s
		}
	}
	return fmt.Sprint(val)
}

// parseValue decodes the contents of a value element. A bare text node is a
// string per the XML-RPC specification.
func parseValue(dec *xml.Decoder, start xml.StartElement) (any, error) {
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			val, err := parseTypedValue(dec, t)
			if err != nil {
				return nil, err
			}
			// Consume up to the closing value tag.
			if err := dec.Skip(); err != nil && err != io.EOF {
				return nil, err
			}
			return val, nil
		case xml.EndElement:
			return text.String(), nil
		}
	}
}

// parseTypedValue decodes one typed element inside value.
func parseTypedValue(dec *xml.Decoder, start xml.StartElement) (any, error) {
	switch start.Name.Local {
	case "nil":
		if err := dec.Skip(); err != nil && err != io.EOF {
			return nil, err
		}
		return nil, nil
	case "string":
		var s string
		if err := dec.DecodeElement(&s, &start); err != nil {
			return nil, err
		}
		return s, nil
	case "int", "i4":
		var s string
		if err := dec.DecodeElement(&s, &start); err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		return n, nil
	case "boolean":
		var s string
		if err := dec.DecodeElement(&s, &start); err != nil {
			return nil, err
		}
		return strings.TrimSpace(s) == "1", nil
	case "double":
		var s string
		if err := dec.DecodeElement(&s, &start); err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	case "array":
		return parseArray(dec)
	case "struct":
		return parseStruct(dec)
	default:
		var s string
		if err := dec.DecodeElement(&s, &start); err != nil {
			return nil, err
		}
		return s, nil
	}
}

// parseArray decodes array/data/value* into a slice.
func parseArray(dec *xml.Decoder) (any, error) {
	result := []any{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "value" {
				val, err := parseValue(dec, t)
				if err != nil {
					return nil, err
				}
				result = append(result, val)
			}
		case xml.EndElement:
			if t.Name.Local == "array" {
				return result, nil
			}
		}
	}
}

// parseStruct decodes struct/member* into a map.
func parseStruct(dec *xml.Decoder) (any, error) {
	result := map[string]any{}
	var name string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "name":
				if err := dec.DecodeElement(&name, &t); err != nil {
					return nil, err
				}
			case "value":
				val, err := parseValue(dec, t)
				if err != nil {
					return nil, err
				}
				result[name] = val
			}
		case xml.EndElement:
			if t.Name.Local == "struct" {
				return result, nil
			}
		}
	}
}

var _ Codec = &XMLCodec{}
