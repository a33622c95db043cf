package client

import (
	"context"

	"github.com/azuma520/prompt-scribe/gateway/internal/domain/inspire"
)

// DefaultAccessLevel is sent when the caller does not specify one.
const DefaultAccessLevel = "all-ages"

// StartConversationRequest opens a new Inspire session.
type StartConversationRequest struct {
	Message         string `json:"message"`
	UserAccessLevel string `json:"user_access_level,omitempty"`
}

// ContinueConversationRequest advances an existing session.
type ContinueConversationRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// SessionStatus is the snapshot returned by the status endpoint.
type SessionStatus struct {
	SessionID string        `json:"session_id"`
	Phase     inspire.Phase `json:"phase"`
	TurnCount int           `json:"turn_count"`
	CreatedAt string        `json:"created_at,omitempty"`
	UpdatedAt string        `json:"updated_at,omitempty"`
}

// StartConversation opens a session with the user's first message.
func (c *Client) StartConversation(ctx context.Context, message, accessLevel string) (*inspire.Response, error) {
	if accessLevel == "" {
		accessLevel = DefaultAccessLevel
	}

	var out inspire.Response
	resp, err := c.resty.R().
		SetContext(ctx).
		SetBody(StartConversationRequest{Message: message, UserAccessLevel: accessLevel}).
		SetResult(&out).
		Post("/api/inspire/start")
	if err != nil {
		return nil, classifyTransport(err)
	}
	if !resp.IsSuccess() {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Detail:     errorDetail(resp.Body(), "開始對話失敗"),
		}
	}
	return &out, nil
}

// ContinueConversation sends the next user message of a session.
func (c *Client) ContinueConversation(ctx context.Context, sessionID, message string) (*inspire.Response, error) {
	var out inspire.Response
	resp, err := c.resty.R().
		SetContext(ctx).
		SetBody(ContinueConversationRequest{SessionID: sessionID, Message: message}).
		SetResult(&out).
		Post("/api/inspire/continue")
	if err != nil {
		return nil, classifyTransport(err)
	}
	if !resp.IsSuccess() {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Detail:     errorDetail(resp.Body(), "繼續對話失敗"),
		}
	}
	return &out, nil
}

// SessionStatusSnapshot fetches the backend's view of a session.
func (c *Client) SessionStatusSnapshot(ctx context.Context, sessionID string) (*SessionStatus, error) {
	var out SessionStatus
	resp, err := c.resty.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/inspire/status/" + sessionID)
	if err != nil {
		return nil, classifyTransport(err)
	}
	if !resp.IsSuccess() {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Detail:     errorDetail(resp.Body(), "查詢會話狀態失敗"),
		}
	}
	return &out, nil
}
