// Package agent wraps the inspire reducer with the side effects the
// reducer stays pure of: backend calls, input validation, and
// fire-and-forget persistence of the transcript.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/azuma520/prompt-scribe/gateway/internal/domain/inspire"
	"github.com/azuma520/prompt-scribe/gateway/internal/infrastructure/logging"
	"github.com/azuma520/prompt-scribe/gateway/internal/storage"
)

// Validation errors, rejected before any network call.
var (
	ErrEmptyMessage     = errors.New("請輸入描述")
	ErrNoSession        = errors.New("會話不存在")
	ErrInvalidDirection = errors.New("無效的方向")
)

// ConversationClient is the slice of the backend client the agent needs.
type ConversationClient interface {
	StartConversation(ctx context.Context, message, accessLevel string) (*inspire.Response, error)
	ContinueConversation(ctx context.Context, sessionID, message string) (*inspire.Response, error)
}

// Agent owns one conversational session. All mutation flows through
// dispatched actions; callers only see state snapshots.
//
// Every network round-trip is tagged with the generation current at
// dispatch time. Reset bumps the generation, so a response that lands
// after a reset is discarded instead of resurrecting the old session.
type Agent struct {
	mu          sync.Mutex
	state       inspire.State
	generation  uint64
	client      ConversationClient
	store       *storage.Store
	logger      *logging.Logger
	accessLevel string
}

// New creates an agent and restores the persisted transcript, if any.
func New(client ConversationClient, store *storage.Store, logger *logging.Logger) *Agent {
	a := &Agent{
		state:       inspire.InitialState(),
		client:      client,
		store:       store,
		logger:      logger,
		accessLevel: "all-ages",
	}
	a.restore()
	return a
}

// WithAccessLevel overrides the user access level sent on session start.
func (a *Agent) WithAccessLevel(level string) *Agent {
	if level != "" {
		a.accessLevel = level
	}
	return a
}

// StartConversation opens a new exchange with the user's first message.
// The user message is dispatched optimistically before the call so it
// shows up immediately.
func (a *Agent) StartConversation(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}

	a.mu.Lock()
	gen := a.generation
	a.dispatchLocked(inspire.ConversationStart{UserMessage: message})
	a.mu.Unlock()

	resp, err := a.client.StartConversation(ctx, message, a.accessLevel)
	return a.settle(gen, resp, err)
}

// ContinueConversation sends the next user message of the active
// session.
func (a *Agent) ContinueConversation(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}

	a.mu.Lock()
	sessionID := a.state.SessionID
	if sessionID == "" {
		a.mu.Unlock()
		return ErrNoSession
	}
	gen := a.generation
	a.dispatchLocked(inspire.ConversationStart{UserMessage: message})
	a.mu.Unlock()

	resp, err := a.client.ContinueConversation(ctx, sessionID, message)
	return a.settle(gen, resp, err)
}

// SelectDirection records the user's pick and tells the backend via a
// normal chat turn carrying the direction's ordinal and title.
func (a *Agent) SelectDirection(ctx context.Context, index int) error {
	a.mu.Lock()
	if index < 0 || index >= len(a.state.Directions) {
		a.mu.Unlock()
		return ErrInvalidDirection
	}
	direction := a.state.Directions[index]
	a.dispatchLocked(inspire.DirectionSelected{Direction: direction, Index: index})
	a.mu.Unlock()

	message := fmt.Sprintf("選擇方向 %d：%s", index+1, direction.Title)
	return a.ContinueConversation(ctx, message)
}

// Reset returns the agent to the initial empty state and invalidates
// any in-flight round-trip.
func (a *Agent) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.generation++
	a.state = inspire.InitialState()
}

// settle folds a round-trip result into state, unless the session was
// reset while the call was in flight.
func (a *Agent) settle(gen uint64, resp *inspire.Response, err error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if gen != a.generation {
		a.logger.Debug("discarding response from a reset session",
			zap.Uint64("generation", gen),
			zap.Uint64("current", a.generation),
		)
		return nil
	}

	if err != nil {
		a.dispatchLocked(inspire.Fail{Err: err})
		return err
	}

	a.dispatchLocked(inspire.ResponseReceived{Response: resp})
	return nil
}

// State returns a snapshot of the session state.
func (a *Agent) State() inspire.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// CanStart reports whether a fresh conversation may begin.
func (a *Agent) CanStart() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.state.IsLoading && a.state.Phase == inspire.PhaseIdle
}

// CanContinue reports whether the active session accepts another turn.
func (a *Agent) CanContinue() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.state.IsLoading && a.state.SessionID != ""
}

// HasDirections reports whether directions are awaiting selection.
func (a *Agent) HasDirections() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.state.Directions) > 0
}

// IsCompleted reports whether the session reached its final artifact.
func (a *Agent) IsCompleted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Phase == inspire.PhaseCompleted
}

// Snapshot bundles state with the derived flags for the HTTP surface.
type Snapshot struct {
	inspire.State
	Error         string `json:"error,omitempty"`
	CanStart      bool   `json:"canStart"`
	CanContinue   bool   `json:"canContinue"`
	HasDirections bool   `json:"hasDirections"`
	IsCompleted   bool   `json:"isCompleted"`
}

// Snapshot returns the state plus derived flags in one consistent view.
func (a *Agent) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := Snapshot{
		State:         a.state,
		CanStart:      !a.state.IsLoading && a.state.Phase == inspire.PhaseIdle,
		CanContinue:   !a.state.IsLoading && a.state.SessionID != "",
		HasDirections: len(a.state.Directions) > 0,
		IsCompleted:   a.state.Phase == inspire.PhaseCompleted,
	}
	if a.state.Err != nil {
		snap.Error = a.state.Err.Error()
	}
	return snap
}

// dispatchLocked advances state and persists the transcript. Callers
// hold the mutex.
func (a *Agent) dispatchLocked(action inspire.Action) {
	a.state = inspire.Reduce(a.state, action)
	a.persistLocked()
}

// persistLocked writes the session id and transcript to durable
// storage. Fire and forget: a failed write is logged, never surfaced.
func (a *Agent) persistLocked() {
	if a.store == nil || a.state.SessionID == "" {
		return
	}
	if err := a.store.Set(storage.KeyLastSession, a.state.SessionID); err != nil {
		a.logger.Warn("failed to persist session id", zap.Error(err))
	}
	if err := a.store.Set(storage.KeyMessages, a.state.Messages); err != nil {
		a.logger.Warn("failed to persist transcript", zap.Error(err))
	}
}

// restore reloads the persisted session id and transcript so a gateway
// restart keeps the conversation history visible.
func (a *Agent) restore() {
	if a.store == nil {
		return
	}

	var sessionID string
	ok, err := a.store.Get(storage.KeyLastSession, &sessionID)
	if err != nil || !ok || sessionID == "" {
		return
	}

	var messages []inspire.Message
	if ok, err := a.store.Get(storage.KeyMessages, &messages); err == nil && ok {
		a.state.SessionID = sessionID
		a.state.Messages = messages
		a.logger.Info("restored persisted session",
			zap.String("session_id", sessionID),
			zap.Int("messages", len(messages)),
		)
	}
}
