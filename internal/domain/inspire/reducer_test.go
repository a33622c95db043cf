package inspire

import (
	"errors"
	"reflect"
	"testing"
)

func directionsResponse() *Response {
	return &Response{
		SessionID: "sess-1",
		Type:      TypeDirections,
		Message:   "為你準備了兩個方向",
		Phase:     PhaseExploring,
		Data: &ResponseData{
			Directions: []interface{}{
				map[string]interface{}{"title": "A"},
				map[string]interface{}{"title": "B"},
			},
		},
		Metadata: ResponseMetadata{TurnCount: 1, ProcessingTimeMS: 1200, TotalCost: 0.01},
	}
}

func TestConversationStart(t *testing.T) {
	state := Reduce(InitialState(), ConversationStart{UserMessage: "孤獨又夢幻的感覺"})

	if !state.IsLoading {
		t.Error("Loading should start")
	}
	if state.Err != nil {
		t.Error("Error should clear")
	}
	if state.Phase != PhaseIdle {
		t.Error("Phase changes only on responses")
	}
	if len(state.Messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(state.Messages))
	}
	if state.Messages[0].Role != RoleUser {
		t.Errorf("Expected user role, got %s", state.Messages[0].Role)
	}
	if state.Messages[0].Content != "孤獨又夢幻的感覺" {
		t.Errorf("Unexpected content: %s", state.Messages[0].Content)
	}
}

func TestResponseReceived(t *testing.T) {
	state := Reduce(InitialState(), ConversationStart{UserMessage: "hello"})
	state = Reduce(state, ResponseReceived{Response: directionsResponse()})

	if state.SessionID != "sess-1" {
		t.Errorf("Expected session id sess-1, got %s", state.SessionID)
	}
	if state.Phase != PhaseExploring {
		t.Errorf("Expected exploring phase, got %s", state.Phase)
	}
	if state.IsLoading {
		t.Error("Loading should stop")
	}
	if len(state.Directions) != 2 {
		t.Fatalf("Expected 2 directions, got %d", len(state.Directions))
	}
	if state.Metadata.TurnCount != 1 || state.Metadata.ProcessingTime != 1200 {
		t.Errorf("Metadata not carried: %+v", state.Metadata)
	}
}

func TestMessageOrderProperty(t *testing.T) {
	// A user message always precedes the assistant messages of the
	// subsequent response, and the list grows by exactly 1 + adapted.
	state := InitialState()

	for turn := 0; turn < 3; turn++ {
		before := len(state.Messages)
		state = Reduce(state, ConversationStart{UserMessage: "turn"})
		resp := directionsResponse()
		adapted := len(AdaptMessages(resp))
		state = Reduce(state, ResponseReceived{Response: resp})

		if len(state.Messages) != before+1+adapted {
			t.Fatalf("turn %d: expected %d messages, got %d", turn, before+1+adapted, len(state.Messages))
		}
		if state.Messages[before].Role != RoleUser {
			t.Errorf("turn %d: user message should come first", turn)
		}
		for _, m := range state.Messages[before+1:] {
			if m.Role != RoleAssistant {
				t.Errorf("turn %d: assistant messages should follow the user's", turn)
			}
		}
	}
}

func TestResponseReceivedDoesNotMutatePrior(t *testing.T) {
	first := Reduce(InitialState(), ConversationStart{UserMessage: "a"})
	snapshot := len(first.Messages)

	_ = Reduce(first, ResponseReceived{Response: directionsResponse()})

	if len(first.Messages) != snapshot {
		t.Error("Prior state transcript must not change")
	}
}

func TestFinalPromptFallsBackToPrevious(t *testing.T) {
	fp := &FinalPrompt{Title: "done", PositivePrompt: "1girl, solo"}
	state := Reduce(InitialState(), ResponseReceived{Response: &Response{
		SessionID: "s", Phase: PhaseCompleted,
		Data: &ResponseData{FinalOutput: fp},
	}})
	if state.FinalPrompt == nil || state.FinalPrompt.Title != "done" {
		t.Fatal("Final prompt should be stored")
	}

	// A later response without final_output keeps the previous artifact.
	state = Reduce(state, ResponseReceived{Response: &Response{
		SessionID: "s", Phase: PhaseCompleted, Message: "還有什麼需要調整嗎？",
	}})
	if state.FinalPrompt == nil || state.FinalPrompt.Title != "done" {
		t.Error("Absent final_output should fall back to previous value")
	}
}

func TestDirectionSelected(t *testing.T) {
	state := Reduce(InitialState(), ResponseReceived{Response: directionsResponse()})
	state = Reduce(state, DirectionSelected{Direction: state.Directions[1], Index: 1})

	if state.SelectedDirection == nil || state.SelectedDirection.Title != "B" {
		t.Error("Selected direction should be stored")
	}
	if !state.IsLoading {
		t.Error("Selection anticipates a follow-up call, loading should start")
	}
}

func TestFailKeepsConversationResumable(t *testing.T) {
	state := Reduce(InitialState(), ConversationStart{UserMessage: "hi"})
	state = Reduce(state, ResponseReceived{Response: directionsResponse()})
	transcript := len(state.Messages)

	state = Reduce(state, Fail{Err: errors.New("backend unreachable")})

	if state.Err == nil {
		t.Error("Error should be recorded")
	}
	if state.IsLoading {
		t.Error("Loading should stop on error")
	}
	if len(state.Messages) != transcript {
		t.Error("Transcript must survive errors")
	}
	if state.Phase != PhaseExploring {
		t.Error("Phase must survive errors")
	}
}

func TestResetFromAnyState(t *testing.T) {
	state := Reduce(InitialState(), ConversationStart{UserMessage: "x"})
	state = Reduce(state, ResponseReceived{Response: directionsResponse()})
	state = Reduce(state, DirectionSelected{Direction: state.Directions[0], Index: 0})
	state = Reduce(state, Fail{Err: errors.New("boom")})

	state = Reduce(state, Reset{})

	if !reflect.DeepEqual(state, InitialState()) {
		t.Errorf("Reset should yield exactly the initial state, got %+v", state)
	}
}
