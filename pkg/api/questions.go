package api

import (
	"context"
	"encoding/base64"
	"io"
)

// ListGroups returns the question groups of a survey.
func (c *Client) ListGroups(ctx context.Context, surveyID int, language string) ([]map[string]any, error) {
	result, err := c.session.Call(ctx, "list_groups", surveyID, stringOrNil(language))
	if err != nil {
		return nil, err
	}
	return asMapList(result)
}

// ListQuestions returns the questions of a survey, optionally narrowed to
// one group and one language.
func (c *Client) ListQuestions(ctx context.Context, surveyID int, groupID int, language string) ([]map[string]any, error) {
	var group any
	if groupID != 0 {
		group = groupID
	}
	result, err := c.session.Call(ctx, "list_questions", surveyID, group, stringOrNil(language))
	if err != nil {
		return nil, err
	}
	return asMapList(result)
}

// GetQuestionProperties returns properties of a question. A nil properties
// slice retrieves all of them.
func (c *Client) GetQuestionProperties(ctx context.Context, questionID int, properties []string, language string) (map[string]any, error) {
	result, err := c.session.Call(ctx, "get_question_properties", questionID, anyOrNil(properties), stringOrNil(language))
	if err != nil {
		return nil, err
	}
	return asMap(result)
}

// DeleteQuestion deletes a question and returns the deleted question ID.
func (c *Client) DeleteQuestion(ctx context.Context, questionID int) (int, error) {
	result, err := c.session.Call(ctx, "delete_question", questionID)
	if err != nil {
		return 0, err
	}
	return asInt(result)
}

// ImportGroup creates a question group from an exported LSG or CSV file read
// from r and returns the new group ID.
func (c *Client) ImportGroup(ctx context.Context, r io.Reader, surveyID int, fileType ImportGroupType) (int, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	encoded := base64.StdEncoding.EncodeToString(contents)
	result, err := c.session.Call(ctx, "import_group", surveyID, encoded, string(fileType))
	if err != nil {
		return 0, err
	}
	return asInt(result)
}

// ImportQuestion creates a question in a group from an LSQ document read
// from r and returns the new question ID. Pair this with the lsq package's
// generator.
func (c *Client) ImportQuestion(ctx context.Context, r io.Reader, surveyID int, groupID int) (int, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	encoded := base64.StdEncoding.EncodeToString(contents)
	result, err := c.session.Call(ctx, "import_question", surveyID, groupID, encoded, "lsq")
	if err != nil {
		return 0, err
	}
	return asInt(result)
}
