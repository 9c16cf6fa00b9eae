package api

import (
	"context"
	"io"
)

// AddResponse adds a single response to a survey and returns the new
// response ID.
func (c *Client) AddResponse(ctx context.Context, surveyID int, response map[string]any) (string, error) {
	result, err := c.session.Call(ctx, "add_response", surveyID, response)
	if err != nil {
		return "", err
	}
	switch v := result.(type) {
	case string:
		return v, nil
	case float64:
		// Some platform versions send the ID as a number.
		return asStringFromNumber(v), nil
	default:
		return "", rpcInvalidShape("expected a response ID")
	}
}

// AddResponses adds multiple responses one by one and returns their IDs in
// input order. It stops at the first failure.
func (c *Client) AddResponses(ctx context.Context, surveyID int, responses []map[string]any) ([]string, error) {
	ids := make([]string, 0, len(responses))
	for _, response := range responses {
		id, err := c.AddResponse(ctx, surveyID, response)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// UpdateResponse updates an existing response. The response map must carry
// the response's id field.
func (c *Client) UpdateResponse(ctx context.Context, surveyID int, response map[string]any) (bool, error) {
	result, err := c.session.Call(ctx, "update_response", surveyID, response)
	if err != nil {
		return false, err
	}
	ok, isBool := result.(bool)
	if !isBool {
		return false, rpcInvalidShape("expected a boolean result")
	}
	return ok, nil
}

// DeleteResponse deletes a response from a survey.
func (c *Client) DeleteResponse(ctx context.Context, surveyID int, responseID int) (map[string]any, error) {
	result, err := c.session.Call(ctx, "delete_response", surveyID, responseID)
	if err != nil {
		return nil, err
	}
	return asMap(result)
}

// ExportOptions narrows a responses export. The zero value exports every
// field of every response with code headings and short texts.
type ExportOptions struct {
	Language         string
	CompletionStatus CompletionStatus
	HeadingType      HeadingType
	ResponseType     ResponseType
	FromResponseID   int
	ToResponseID     int
	Fields           []string
}

func (o *ExportOptions) withDefaults() ExportOptions {
	opts := ExportOptions{
		CompletionStatus: CompletionAll,
		HeadingType:      HeadingCode,
		ResponseType:     ResponseShort,
	}
	if o != nil {
		if o.Language != "" {
			opts.Language = o.Language
		}
		if o.CompletionStatus != "" {
			opts.CompletionStatus = o.CompletionStatus
		}
		if o.HeadingType != "" {
			opts.HeadingType = o.HeadingType
		}
		if o.ResponseType != "" {
			opts.ResponseType = o.ResponseType
		}
		opts.FromResponseID = o.FromResponseID
		opts.ToResponseID = o.ToResponseID
		opts.Fields = o.Fields
	}
	return opts
}

func (o ExportOptions) rangeArgs() (any, any) {
	var from, to any
	if o.FromResponseID != 0 {
		from = o.FromResponseID
	}
	if o.ToResponseID != 0 {
		to = o.ToResponseID
	}
	return from, to
}

// ExportResponses writes an export of the survey's responses to w and
// returns the number of bytes written. The export arrives base64-encoded and
// is decoded before writing.
func (c *Client) ExportResponses(ctx context.Context, w io.Writer, surveyID int, format ResponsesExportFormat, options *ExportOptions) (int, error) {
	opts := options.withDefaults()
	from, to := opts.rangeArgs()
	result, err := c.session.Call(ctx, "export_responses",
		surveyID, string(format), stringOrNil(opts.Language),
		string(opts.CompletionStatus), string(opts.HeadingType), string(opts.ResponseType),
		from, to, anyOrNil(opts.Fields),
	)
	if err != nil {
		return 0, err
	}
	return writeBase64(w, result)
}

// ExportResponsesByToken writes the responses submitted under one
// participant token to w and returns the number of bytes written.
func (c *Client) ExportResponsesByToken(ctx context.Context, w io.Writer, surveyID int, format ResponsesExportFormat, token string, options *ExportOptions) (int, error) {
	opts := options.withDefaults()
	from, to := opts.rangeArgs()
	result, err := c.session.Call(ctx, "export_responses_by_token",
		surveyID, string(format), token, stringOrNil(opts.Language),
		string(opts.CompletionStatus), string(opts.HeadingType), string(opts.ResponseType),
		from, to, anyOrNil(opts.Fields),
	)
	if err != nil {
		return 0, err
	}
	return writeBase64(w, result)
}

// GetUploadedFiles returns the metadata of files uploaded in responses,
// keyed by file name. token narrows the listing to one participant when
// non-empty.
func (c *Client) GetUploadedFiles(ctx context.Context, surveyID int, token string) (map[string]any, error) {
	result, err := c.session.Call(ctx, "get_uploaded_files", surveyID, stringOrNil(token))
	if err != nil {
		return nil, err
	}
	return asMap(result)
}

// UploadedFile is one file uploaded in a survey response.
type UploadedFile struct {
	Meta    map[string]any
	Content []byte
}

// DownloadFiles decodes every uploaded file of a survey. The map is keyed by
// the stored file name.
func (c *Client) DownloadFiles(ctx context.Context, surveyID int, token string) (map[string]UploadedFile, error) {
	files, err := c.GetUploadedFiles(ctx, surveyID, token)
	if err != nil {
		return nil, err
	}
	out := make(map[string]UploadedFile, len(files))
	for name, entry := range files {
		record, ok := entry.(map[string]any)
		if !ok {
			return nil, rpcInvalidShape("expected a file record")
		}
		content, err := decodeBase64Field(record, "content")
		if err != nil {
			return nil, err
		}
		meta, _ := record["meta"].(map[string]any)
		out[name] = UploadedFile{Meta: meta, Content: content}
	}
	return out, nil
}
