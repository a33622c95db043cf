package inspire

import (
	"fmt"

	"github.com/azuma520/prompt-scribe/gateway/internal/shared/id"
)

// The backend does not guarantee the shape of the message field: it may
// be a plain string, a list of structured output items, or something
// else entirely. Adaptation is a tagged dispatch over that
// classification, one normalization path per case.

type messageKind int

const (
	kindNone messageKind = iota
	kindString
	kindList
	kindOther
)

func classifyMessage(v interface{}) messageKind {
	switch v.(type) {
	case nil:
		return kindNone
	case string:
		return kindString
	case []interface{}:
		return kindList
	default:
		return kindOther
	}
}

// NormalizedMessage is the uniform record every payload shape reduces to.
type NormalizedMessage struct {
	ID      string
	Role    string
	Type    string
	Content string
	Raw     interface{}
}

// AdaptMessages normalizes a backend response into an ordered list of
// assistant message records. A nil response or absent message field
// yields an empty list.
func AdaptMessages(resp *Response) []NormalizedMessage {
	if resp == nil {
		return nil
	}

	switch classifyMessage(resp.Message) {
	case kindNone:
		return nil
	case kindString:
		return adaptString(resp.Message.(string))
	case kindList:
		return adaptList(resp.Message.([]interface{}))
	default:
		return adaptUnknown(resp.Message)
	}
}

func adaptString(s string) []NormalizedMessage {
	return []NormalizedMessage{{
		ID:      id.NewMessageID().String(),
		Role:    RoleAssistant,
		Type:    "text",
		Content: s,
		Raw:     s,
	}}
}

func adaptList(items []interface{}) []NormalizedMessage {
	out := make([]NormalizedMessage, 0, len(items))
	for _, it := range items {
		msg := NormalizedMessage{
			ID:      id.NewMessageID().String(),
			Role:    RoleAssistant,
			Type:    "output_text",
			Content: extractText(it),
			Raw:     it,
		}
		if m, ok := it.(map[string]interface{}); ok {
			if v, ok := m["id"].(string); ok && v != "" {
				msg.ID = v
			}
			if v, ok := m["type"].(string); ok && v != "" {
				msg.Type = v
			}
		}
		out = append(out, msg)
	}
	return out
}

func adaptUnknown(v interface{}) []NormalizedMessage {
	return []NormalizedMessage{{
		ID:      id.NewMessageID().String(),
		Role:    RoleAssistant,
		Type:    "unknown",
		Content: extractText(v),
		Raw:     v,
	}}
}

// extractText pulls display text out of an arbitrarily shaped item:
// a text property wins, then a content property, then the whole value
// string-coerced.
func extractText(item interface{}) string {
	switch v := item.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]interface{}:
		if text, ok := v["text"]; ok {
			return coerceString(text)
		}
		if content, ok := v["content"]; ok {
			return coerceString(content)
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func coerceString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Known Direction fields; everything else is preserved in Extra.
var directionFields = map[string]bool{
	"id": true, "title": true, "concept": true, "core_mood": true,
	"main_tags": true, "style_notes": true, "atmosphere": true,
}

// NormalizeDirections turns a raw, possibly malformed directions list
// into fully-populated Direction records. Every declared field gets a
// default (title falls back to "方向 N"), and unrecognized original
// fields are carried through untouched.
func NormalizeDirections(raw []interface{}) []Direction {
	if len(raw) == 0 {
		return nil
	}

	out := make([]Direction, 0, len(raw))
	for i, item := range raw {
		d := Direction{
			ID:       fmt.Sprintf("direction-%d", i),
			Title:    fmt.Sprintf("方向 %d", i+1),
			MainTags: []string{},
		}

		m, ok := item.(map[string]interface{})
		if !ok {
			out = append(out, d)
			continue
		}

		if v, ok := m["id"].(string); ok && v != "" {
			d.ID = v
		}
		if v, ok := m["title"].(string); ok && v != "" {
			d.Title = v
		}
		d.Concept = stringField(m, "concept")
		d.CoreMood = stringField(m, "core_mood")
		d.StyleNotes = stringField(m, "style_notes")
		d.Atmosphere = stringField(m, "atmosphere")
		d.MainTags = stringSliceField(m, "main_tags")

		for k, v := range m {
			if !directionFields[k] {
				if d.Extra == nil {
					d.Extra = make(map[string]interface{})
				}
				d.Extra[k] = v
			}
		}
		out = append(out, d)
	}
	return out
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func stringSliceField(m map[string]interface{}, key string) []string {
	out := []string{}
	raw, ok := m[key].([]interface{})
	if !ok {
		return out
	}
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
