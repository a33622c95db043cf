// Package workspace maintains the user's persisted working set of
// chosen tags, independent of any conversation session.
package workspace

import (
	"fmt"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/azuma520/prompt-scribe/gateway/internal/infrastructure/logging"
	"github.com/azuma520/prompt-scribe/gateway/internal/shared/types"
	"github.com/azuma520/prompt-scribe/gateway/internal/storage"
)

// Store holds an ordered set of tags keyed by unique id. All mutation
// goes through its methods; every successful mutation is persisted.
type Store struct {
	mu     sync.RWMutex
	tags   []types.Tag
	store  *storage.Store
	logger *logging.Logger

	// Injected so tests don't need a display server.
	writeClipboard func(string) error
}

// New creates a workspace store and loads the persisted tag set.
func New(store *storage.Store, logger *logging.Logger) *Store {
	s := &Store{
		tags:           []types.Tag{},
		store:          store,
		logger:         logger,
		writeClipboard: clipboard.WriteAll,
	}
	s.load()
	return s
}

// Tags returns the current tag list in order.
func (s *Store) Tags() []types.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// Count returns the number of tags in the workspace.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tags)
}

// AddTag appends a tag. Adding an id already present is a no-op.
func (s *Store) AddTag(tag types.Tag) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tags {
		if t.ID == tag.ID {
			return
		}
	}
	s.tags = append(s.tags, tag)
	s.saveLocked()
}

// AddTags appends tags in bulk, de-duplicated against the existing set
// and against each other.
func (s *Store) AddTags(tags []types.Tag) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(s.tags)+len(tags))
	for _, t := range s.tags {
		seen[t.ID] = true
	}

	added := false
	for _, t := range tags {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		s.tags = append(s.tags, t)
		added = true
	}
	if added {
		s.saveLocked()
	}
}

// RemoveTag deletes the tag with the given id, if present.
func (s *Store) RemoveTag(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tags {
		if t.ID == id {
			s.tags = append(s.tags[:i], s.tags[i+1:]...)
			s.saveLocked()
			return
		}
	}
}

// ClearAll empties the workspace.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags = []types.Tag{}
	s.saveLocked()
}

// ReorderTags moves the tag at from to position to, shifting the rest.
// Out-of-range indices are ignored.
func (s *Store) ReorderTags(from, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if from < 0 || from >= len(s.tags) || to < 0 || to >= len(s.tags) || from == to {
		return
	}

	moved := s.tags[from]
	rest := append(s.tags[:from:from], s.tags[from+1:]...)
	s.tags = append(rest[:to:to], append([]types.Tag{moved}, rest[to:]...)...)
	s.saveLocked()
}

// FormatPrompt joins the tag names with ", " in current order.
func (s *Store) FormatPrompt() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.tags))
	for i, t := range s.tags {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

// FormatOptions tune FormatPromptWith output.
type FormatOptions struct {
	Separator string
	Weights   map[string]float64
}

// FormatPromptWith renders the prompt with an optional separator and
// per-tag weights; a weighted tag becomes "(name:1.2)".
func (s *Store) FormatPromptWith(opts FormatOptions) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sep := opts.Separator
	if sep == "" {
		sep = ", "
	}

	parts := make([]string, len(s.tags))
	for i, t := range s.tags {
		w, ok := opts.Weights[t.Name]
		if ok && w != 1.0 {
			parts[i] = fmt.Sprintf("(%s:%.1f)", t.Name, w)
		} else {
			parts[i] = t.Name
		}
	}
	return strings.Join(parts, sep)
}

// CopyToClipboard puts the formatted prompt on the system clipboard.
// Reports success; never returns an error.
func (s *Store) CopyToClipboard() bool {
	if err := s.writeClipboard(s.FormatPrompt()); err != nil {
		s.logger.Warn("failed to copy to clipboard", zap.Error(err))
		return false
	}
	return true
}

func (s *Store) saveLocked() {
	if s.store == nil {
		return
	}
	if err := s.store.Set(storage.KeyWorkspaceTags, s.tags); err != nil {
		s.logger.Warn("failed to persist workspace", zap.Error(err))
	}
}

func (s *Store) load() {
	if s.store == nil {
		return
	}
	var tags []types.Tag
	if ok, err := s.store.Get(storage.KeyWorkspaceTags, &tags); err == nil && ok && tags != nil {
		s.tags = tags
	}
}
