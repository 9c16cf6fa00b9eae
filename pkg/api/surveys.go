package api

import (
	"context"
	"encoding/base64"
	"io"
)

// ListSurveys returns all surveys, or only those owned by username when it is
// non-empty.
func (c *Client) ListSurveys(ctx context.Context, username string) ([]Survey, error) {
	var owner any
	if username != "" {
		owner = username
	}
	result, err := c.session.Call(ctx, "list_surveys", owner)
	if err != nil {
		return nil, err
	}
	return decodeList[Survey](result)
}

// GetSurveyProperties returns properties of a survey. A nil properties slice
// retrieves all of them.
func (c *Client) GetSurveyProperties(ctx context.Context, surveyID int, properties []string) (map[string]any, error) {
	result, err := c.session.Call(ctx, "get_survey_properties", surveyID, anyOrNil(properties))
	if err != nil {
		return nil, err
	}
	return asMap(result)
}

// SetSurveyProperties updates properties of a survey and returns the
// per-property acceptance map.
func (c *Client) SetSurveyProperties(ctx context.Context, surveyID int, properties map[string]any) (map[string]any, error) {
	result, err := c.session.Call(ctx, "set_survey_properties", surveyID, properties)
	if err != nil {
		return nil, err
	}
	return asMap(result)
}

// ActivateSurvey activates a survey and returns status and plugin feedback.
func (c *Client) ActivateSurvey(ctx context.Context, surveyID int) (map[string]any, error) {
	result, err := c.session.Call(ctx, "activate_survey", surveyID)
	if err != nil {
		return nil, err
	}
	return asMap(result)
}

// DeleteSurvey deletes a survey.
func (c *Client) DeleteSurvey(ctx context.Context, surveyID int) (map[string]any, error) {
	result, err := c.session.Call(ctx, "delete_survey", surveyID)
	if err != nil {
		return nil, err
	}
	return asMap(result)
}

// CopySurvey copies a survey under a new name and returns the copy metadata.
func (c *Client) CopySurvey(ctx context.Context, surveyID int, name string) (map[string]any, error) {
	result, err := c.session.Call(ctx, "copy_survey", surveyID, name)
	if err != nil {
		return nil, err
	}
	return asMap(result)
}

// AddSurvey creates a new empty survey and returns its ID.
func (c *Client) AddSurvey(ctx context.Context, surveyID int, title string, language string, format NewSurveyType) (int, error) {
	result, err := c.session.Call(ctx, "add_survey", surveyID, title, language, string(format))
	if err != nil {
		return 0, err
	}
	return asInt(result)
}

// ImportSurvey creates a new survey from an exported file read from r. name
// overrides the survey title when non-empty; surveyID requests a specific ID
// when non-zero (the platform may still assign a different one). Returns the
// ID of the new survey.
func (c *Client) ImportSurvey(ctx context.Context, r io.Reader, fileType ImportSurveyType, name string, surveyID int) (int, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	encoded := base64.StdEncoding.EncodeToString(contents)

	var surveyName any
	if name != "" {
		surveyName = name
	}
	var desiredID any
	if surveyID != 0 {
		desiredID = surveyID
	}
	result, err := c.session.Call(ctx, "import_survey", encoded, string(fileType), surveyName, desiredID)
	if err != nil {
		return 0, err
	}
	return asInt(result)
}

// GetSummary returns aggregate counts (tokens, responses) of a survey.
func (c *Client) GetSummary(ctx context.Context, surveyID int) (map[string]any, error) {
	result, err := c.session.Call(ctx, "get_summary", surveyID, "all")
	if err != nil {
		return nil, err
	}
	return asMap(result)
}

// GetLanguageProperties returns survey localization settings for a language.
func (c *Client) GetLanguageProperties(ctx context.Context, surveyID int, properties []string, language string) (map[string]any, error) {
	result, err := c.session.Call(ctx, "get_language_properties", surveyID, anyOrNil(properties), stringOrNil(language))
	if err != nil {
		return nil, err
	}
	return asMap(result)
}

// SetLanguageProperties updates survey localization settings.
func (c *Client) SetLanguageProperties(ctx context.Context, surveyID int, properties map[string]any, language string) (map[string]any, error) {
	result, err := c.session.Call(ctx, "set_language_properties", surveyID, properties, stringOrNil(language))
	if err != nil {
		return nil, err
	}
	return asMap(result)
}

// GetFieldmap returns the requested survey's field map: one entry per
// response column.
func (c *Client) GetFieldmap(ctx context.Context, surveyID int) (map[string]any, error) {
	result, err := c.session.Call(ctx, "get_fieldmap", surveyID)
	if err != nil {
		return nil, err
	}
	return asMap(result)
}

// GetSiteSettings returns one global setting. Admin permissions are required.
func (c *Client) GetSiteSettings(ctx context.Context, name string) (any, error) {
	return c.session.Call(ctx, "get_site_settings", name)
}

// GetDefaultTheme returns the global default theme name.
func (c *Client) GetDefaultTheme(ctx context.Context) (string, error) {
	result, err := c.GetSiteSettings(ctx, "defaulttheme")
	if err != nil {
		return "", err
	}
	return asString(result)
}

// GetAvailableSiteSettings returns the names of settings readable through
// GetSiteSettings.
func (c *Client) GetAvailableSiteSettings(ctx context.Context) ([]string, error) {
	result, err := c.session.Call(ctx, "get_available_site_settings")
	if err != nil {
		return nil, err
	}
	items, ok := result.([]any)
	if !ok {
		return nil, rpcInvalidShape("expected a list result")
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, rpcInvalidShape("expected a list of strings")
		}
		names = append(names, s)
	}
	return names, nil
}

// ListUsers returns the users of the platform instance.
func (c *Client) ListUsers(ctx context.Context) ([]map[string]any, error) {
	result, err := c.session.Call(ctx, "list_users")
	if err != nil {
		return nil, err
	}
	return asMapList(result)
}

// ExportStatistics writes a statistics export of the survey to w and returns
// the number of bytes written.
func (c *Client) ExportStatistics(ctx context.Context, w io.Writer, surveyID int, format StatisticsExportFormat) (int, error) {
	result, err := c.session.Call(ctx, "export_statistics", surveyID, string(format))
	if err != nil {
		return 0, err
	}
	return writeBase64(w, result)
}

// ExportTimeline returns submission counts bucketed by the aggregation
// period.
func (c *Client) ExportTimeline(ctx context.Context, surveyID int, period TimelineAggregation, start string, end string) (map[string]any, error) {
	result, err := c.session.Call(ctx, "export_timeline", surveyID, string(period), start, end)
	if err != nil {
		return nil, err
	}
	return asMap(result)
}
