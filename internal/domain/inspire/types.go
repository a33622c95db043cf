// Package inspire holds the conversational session engine for the
// Inspire Agent: the wire types of the backend contract, the response
// adapter that normalizes its loosely-shaped payloads, and the pure
// reducer that advances session state.
package inspire

import (
	"encoding/json"
	"time"
)

// Phase is the server-declared stage of a session. The backend is the
// source of truth; the reducer stores whatever label it receives and
// never infers transitions locally.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseUnderstanding Phase = "understanding"
	PhaseExploring     Phase = "exploring"
	PhaseRefining      Phase = "refining"
	PhaseCompleted     Phase = "completed"
)

// ResponseType classifies a backend response.
type ResponseType string

const (
	TypeMessage    ResponseType = "message"
	TypeQuestion   ResponseType = "question"
	TypeDirections ResponseType = "directions"
	TypeCompleted  ResponseType = "completed"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of the conversation transcript. The transcript is
// append-only; messages are never mutated after creation.
type Message struct {
	ID        string      `json:"id"`
	Role      string      `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Type      string      `json:"type,omitempty"`
	Raw       interface{} `json:"raw,omitempty"`
}

// Direction is one candidate creative concept offered mid-session.
// Immutable once received; selecting one produces a follow-up chat
// message, not a mutation of the direction.
type Direction struct {
	ID         string                 `json:"id"`
	Title      string                 `json:"title"`
	Concept    string                 `json:"concept"`
	CoreMood   string                 `json:"core_mood"`
	MainTags   []string               `json:"main_tags"`
	StyleNotes string                 `json:"style_notes"`
	Atmosphere string                 `json:"atmosphere"`
	Extra      map[string]interface{} `json:"-"`
}

// MarshalJSON merges preserved original fields back into the object so
// nothing the backend sent is lost on the way to the client.
func (d Direction) MarshalJSON() ([]byte, error) {
	type alias Direction
	base, err := json.Marshal(alias(d))
	if err != nil {
		return nil, err
	}

	if len(d.Extra) == 0 {
		return base, nil
	}

	merged := make(map[string]interface{}, len(d.Extra)+7)
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range d.Extra {
		if _, known := merged[k]; !known {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// GenerationParameters are the recommended image-generation settings.
// CFGScale may be a number or a range string like "7-9".
type GenerationParameters struct {
	CFGScale interface{} `json:"cfg_scale"`
	Steps    int         `json:"steps"`
	Sampler  string      `json:"sampler"`
	Size     string      `json:"size"`
}

// FinalPrompt is the terminal artifact of a completed session.
type FinalPrompt struct {
	Title          string               `json:"title"`
	Concept        string               `json:"concept,omitempty"`
	PositivePrompt string               `json:"positive_prompt"`
	NegativePrompt string               `json:"negative_prompt"`
	MainTags       []string             `json:"main_tags,omitempty"`
	Parameters     GenerationParameters `json:"parameters"`
	UsageTips      string               `json:"usage_tips,omitempty"`
	QualityScore   *float64             `json:"quality_score,omitempty"`
}

// ResponseData carries the structured payload of a response, when any.
// Directions stay raw here; the adapter normalizes them field by field
// because the backend's shape is not guaranteed.
type ResponseData struct {
	Directions  []interface{} `json:"directions,omitempty"`
	FinalOutput *FinalPrompt  `json:"final_output,omitempty"`
	Question    string        `json:"question,omitempty"`
	Options     []string      `json:"options,omitempty"`
}

// ResponseMetadata carries session bookkeeping from the backend.
type ResponseMetadata struct {
	TurnCount        int     `json:"turn_count"`
	ProcessingTimeMS int64   `json:"processing_time_ms"`
	TotalCost        float64 `json:"total_cost,omitempty"`
	TotalTokens      int     `json:"total_tokens,omitempty"`
}

// Response is the backend's reply to a start or continue call. Message
// is deliberately untyped: observed shapes include a plain string, a
// list of structured output items, and occasionally something else.
type Response struct {
	SessionID string          `json:"session_id"`
	Type      ResponseType    `json:"type"`
	Message   interface{}     `json:"message"`
	Phase     Phase           `json:"phase"`
	Data      *ResponseData   `json:"data,omitempty"`
	Metadata  ResponseMetadata `json:"metadata"`
}

// Metadata is the session-local view of response metadata.
type Metadata struct {
	TurnCount      int     `json:"turnCount"`
	ProcessingTime int64   `json:"processingTime"`
	TotalCost      float64 `json:"totalCost"`
}

// State is the full session state. Values only; every transition
// produces a fresh State, the reducer never mutates in place.
type State struct {
	SessionID         string       `json:"sessionId,omitempty"`
	Messages          []Message    `json:"messages"`
	Phase             Phase        `json:"phase"`
	Directions        []Direction  `json:"directions,omitempty"`
	SelectedDirection *Direction   `json:"selectedDirection,omitempty"`
	FinalPrompt       *FinalPrompt `json:"finalPrompt,omitempty"`
	IsLoading         bool         `json:"isLoading"`
	Err               error        `json:"-"`
	Metadata          Metadata     `json:"metadata"`
}

// InitialState returns the empty idle session.
func InitialState() State {
	return State{
		Phase:    PhaseIdle,
		Messages: []Message{},
	}
}
