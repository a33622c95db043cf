package inspire

import (
	"time"

	"github.com/azuma520/prompt-scribe/gateway/internal/shared/id"
)

// Action is a session state transition request.
type Action interface {
	isAction()
}

// ConversationStart appends the user's message and marks the session
// loading. The phase does not change; phases move only on responses.
type ConversationStart struct {
	UserMessage string
}

// ResponseReceived folds a backend response into the session.
type ResponseReceived struct {
	Response *Response
}

// DirectionSelected records the user's pick. The follow-up network turn
// is the orchestrator's job, so loading starts here.
type DirectionSelected struct {
	Direction Direction
	Index     int
}

// Fail records an error. The transcript and phase stay intact so the
// conversation remains resumable.
type Fail struct {
	Err error
}

// SetLoading toggles the loading flag directly.
type SetLoading struct {
	Loading bool
}

// Reset returns the session to its initial empty state.
type Reset struct{}

func (ConversationStart) isAction()  {}
func (ResponseReceived) isAction()   {}
func (DirectionSelected) isAction()  {}
func (Fail) isAction()               {}
func (SetLoading) isAction()         {}
func (Reset) isAction()              {}

// Reduce computes the next session state. Pure with respect to its
// inputs: the given state is never mutated, transcripts grow by
// concatenation into fresh slices.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case ConversationStart:
		next := state
		next.IsLoading = true
		next.Err = nil
		next.Messages = appendMessages(state.Messages, Message{
			ID:        id.NewUserMessageID().String(),
			Role:      RoleUser,
			Content:   a.UserMessage,
			Timestamp: time.Now(),
		})
		return next

	case ResponseReceived:
		resp := a.Response
		now := time.Now()

		adapted := AdaptMessages(resp)
		incoming := make([]Message, 0, len(adapted))
		for _, m := range adapted {
			incoming = append(incoming, Message{
				ID:        m.ID,
				Role:      m.Role,
				Content:   m.Content,
				Timestamp: now,
				Type:      m.Type,
				Raw:       m.Raw,
			})
		}

		next := state
		next.SessionID = resp.SessionID
		next.Messages = appendMessages(state.Messages, incoming...)
		next.Phase = resp.Phase
		next.IsLoading = false
		next.Metadata = Metadata{
			TurnCount:      resp.Metadata.TurnCount,
			ProcessingTime: resp.Metadata.ProcessingTimeMS,
			TotalCost:      resp.Metadata.TotalCost,
		}

		if resp.Data != nil {
			next.Directions = NormalizeDirections(resp.Data.Directions)
			if resp.Data.FinalOutput != nil {
				next.FinalPrompt = resp.Data.FinalOutput
			}
		} else {
			next.Directions = nil
		}
		return next

	case DirectionSelected:
		next := state
		selected := a.Direction
		next.SelectedDirection = &selected
		next.IsLoading = true
		return next

	case Fail:
		next := state
		next.Err = a.Err
		next.IsLoading = false
		return next

	case SetLoading:
		next := state
		next.IsLoading = a.Loading
		return next

	case Reset:
		return InitialState()

	default:
		return state
	}
}

// appendMessages concatenates into a fresh slice so prior states keep
// their own transcript view.
func appendMessages(existing []Message, incoming ...Message) []Message {
	out := make([]Message, 0, len(existing)+len(incoming))
	out = append(out, existing...)
	out = append(out, incoming...)
	return out
}
