package api

import (
	"context"
	"strings"
)

// ActivateTokens initializes the participant table of a survey. attributes
// lists additional fields to create.
func (c *Client) ActivateTokens(ctx context.Context, surveyID int, attributes []string) (map[string]any, error) {
	result, err := c.session.Call(ctx, "activate_tokens", surveyID, anyOrNil(attributes))
	if err != nil {
		return nil, err
	}
	return asMap(result)
}

// AddParticipants adds participants to a survey and returns the records of
// the newly created participants, including generated tokens.
func (c *Client) AddParticipants(ctx context.Context, surveyID int, participants []Participant, createTokens bool) ([]map[string]any, error) {
	records := make([]any, 0, len(participants))
	for _, p := range participants {
		records = append(records, p.ToMap())
	}
	result, err := c.session.Call(ctx, "add_participants", surveyID, records, createTokens)
	if err != nil {
		return nil, err
	}
	return asMapList(result)
}

// DeleteParticipants deletes participants by token ID and returns the
// per-token deletion status.
func (c *Client) DeleteParticipants(ctx context.Context, surveyID int, tokenIDs []int) (map[string]any, error) {
	result, err := c.session.Call(ctx, "delete_participants", surveyID, tokenIDs)
	if err != nil {
		return nil, err
	}
	return asMap(result)
}

// ListParticipants returns participants of a survey, starting at the
// zero-based start index and returning at most limit entries. unused filters
// for participants with unused tokens; conditions narrows the listing.
func (c *Client) ListParticipants(ctx context.Context, surveyID int, start int, limit int, unused bool, attributes []string, conditions map[string]any) ([]map[string]any, error) {
	var attrs any = false
	if len(attributes) > 0 {
		attrs = attributes
	}
	var conds any
	if len(conditions) > 0 {
		conds = conditions
	}
	result, err := c.session.Call(ctx, "list_participants", surveyID, start, limit, unused, attrs, conds)
	if err != nil {
		return nil, err
	}
	return asMapList(result)
}

// GetParticipantProperties returns properties of a single participant
// identified by token ID.
func (c *Client) GetParticipantProperties(ctx context.Context, surveyID int, tokenID int, properties []string) (map[string]any, error) {
	result, err := c.session.Call(ctx, "get_participant_properties", surveyID, tokenID, anyOrNil(properties))
	if err != nil {
		return nil, err
	}
	return asMap(result)
}

// SetParticipantProperties updates properties of a single participant.
func (c *Client) SetParticipantProperties(ctx context.Context, surveyID int, tokenID int, properties map[string]any) (map[string]any, error) {
	result, err := c.session.Call(ctx, "set_participant_properties", surveyID, tokenID, properties)
	if err != nil {
		return nil, err
	}
	return asMap(result)
}

// InviteParticipants sends invitation emails to the given participants, or to
// all pending ones when tokenIDs is nil. The platform reports the send tally
// as a status-shaped result ("-1 left to send"); that shape is success here,
// not an error.
func (c *Client) InviteParticipants(ctx context.Context, surveyID int, tokenIDs []int, pendingOnly bool) (map[string]any, error) {
	var tokens any
	if len(tokenIDs) > 0 {
		tokens = tokenIDs
	}
	result, err := c.session.CallWith(ctx, "invite_participants", nil, surveyID, tokens, !pendingOnly)
	if err != nil {
		if benign, ok := sendTallyStatus(err); ok {
			return benign, nil
		}
		return nil, err
	}
	return asMap(result)
}

// RemindParticipants sends reminder emails. Like InviteParticipants, the send
// tally arrives as a status-shaped result.
func (c *Client) RemindParticipants(ctx context.Context, surveyID int, minDaysBetween int, maxReminders int, tokenIDs []int) (map[string]any, error) {
	var tokens any
	if len(tokenIDs) > 0 {
		tokens = tokenIDs
	}
	result, err := c.session.CallWith(ctx, "remind_participants", nil, surveyID, minDaysBetween, maxReminders, tokens)
	if err != nil {
		if benign, ok := sendTallyStatus(err); ok {
			return benign, nil
		}
		return nil, err
	}
	return asMap(result)
}

// MailRegisteredParticipants emails registered participants matching the
// condition and returns the platform's status message.
func (c *Client) MailRegisteredParticipants(ctx context.Context, surveyID int, conditions map[string]any) (string, error) {
	var conds any
	if len(conditions) > 0 {
		conds = conditions
	}
	result, err := c.session.CallWith(ctx, "mail_registered_participants", nil, surveyID, conds)
	if err != nil {
		if benign, ok := sendTallyStatus(err); ok {
			if status, sok := benign["status"].(string); sok {
				return status, nil
			}
		}
		return "", err
	}
	return asString(result)
}

// sendTallyStatus recognizes the "N left to send" status family the mail
// operations use as a success marker, and recovers the full status payload.
func sendTallyStatus(err error) (map[string]any, bool) {
	statusErr, ok := asStatusError(err)
	if !ok {
		return nil, false
	}
	if !strings.HasSuffix(statusErr.Status, "left to send") {
		return nil, false
	}
	m, mapErr := asMap(statusErr.Response.Result)
	if mapErr != nil {
		return nil, false
	}
	return m, true
}
