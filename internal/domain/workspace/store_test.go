package workspace

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azuma520/prompt-scribe/gateway/internal/infrastructure/logging"
	"github.com/azuma520/prompt-scribe/gateway/internal/shared/types"
	"github.com/azuma520/prompt-scribe/gateway/internal/storage"
)

func tag(id, name string) types.Tag {
	return types.Tag{ID: id, Name: name}
}

func newTestStore() *Store {
	return New(nil, logging.NewNop())
}

func TestAddTagDeduplicates(t *testing.T) {
	s := newTestStore()

	s.AddTag(tag("1", "1girl"))
	s.AddTag(tag("1", "1girl"))

	assert.Equal(t, 1, s.Count(), "duplicate add must be a no-op")
}

func TestAddTagsBulkDeduplicates(t *testing.T) {
	s := newTestStore()
	s.AddTag(tag("1", "1girl"))

	// De-duplicated against the existing set and against each other.
	s.AddTags([]types.Tag{
		tag("1", "1girl"),
		tag("2", "solo"),
		tag("2", "solo"),
		tag("3", "smile"),
	})

	assert.Equal(t, 3, s.Count())
	assert.Equal(t, "1girl, solo, smile", s.FormatPrompt())
}

func TestRemoveTag(t *testing.T) {
	s := newTestStore()
	s.AddTags([]types.Tag{tag("1", "a"), tag("2", "b"), tag("3", "c")})

	s.RemoveTag("2")
	assert.Equal(t, "a, c", s.FormatPrompt())

	s.RemoveTag("missing")
	assert.Equal(t, 2, s.Count())
}

func TestClearAll(t *testing.T) {
	s := newTestStore()
	s.AddTags([]types.Tag{tag("1", "a"), tag("2", "b")})

	s.ClearAll()

	assert.Equal(t, 0, s.Count())
	assert.Equal(t, "", s.FormatPrompt())
}

func TestReorderTags(t *testing.T) {
	s := newTestStore()
	s.AddTags([]types.Tag{tag("1", "a"), tag("2", "b"), tag("3", "c"), tag("4", "d")})

	s.ReorderTags(0, 2)
	assert.Equal(t, "b, c, a, d", s.FormatPrompt(), "stable move semantics")

	s.ReorderTags(3, 0)
	assert.Equal(t, "d, b, c, a", s.FormatPrompt())

	// Out-of-range moves are ignored.
	s.ReorderTags(-1, 2)
	s.ReorderTags(0, 99)
	assert.Equal(t, "d, b, c, a", s.FormatPrompt())
}

func TestFormatPrompt(t *testing.T) {
	s := newTestStore()
	s.AddTag(tag("1", "1girl"))
	s.AddTag(tag("2", "solo"))

	assert.Equal(t, "1girl, solo", s.FormatPrompt())
}

func TestFormatPromptWithWeights(t *testing.T) {
	s := newTestStore()
	s.AddTags([]types.Tag{tag("1", "1girl"), tag("2", "solo"), tag("3", "night")})

	got := s.FormatPromptWith(FormatOptions{
		Weights: map[string]float64{"solo": 1.2, "night": 1.0},
	})
	assert.Equal(t, "1girl, (solo:1.2), night", got)

	got = s.FormatPromptWith(FormatOptions{Separator: " | "})
	assert.Equal(t, "1girl | solo | night", got)
}

func TestCopyToClipboardNeverErrors(t *testing.T) {
	s := newTestStore()
	s.AddTag(tag("1", "1girl"))

	var copied string
	s.writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	assert.True(t, s.CopyToClipboard())
	assert.Equal(t, "1girl", copied)

	s.writeClipboard = func(string) error { return errors.New("no display") }
	assert.False(t, s.CopyToClipboard(), "failure reports false, never an error")
}

func TestPersistsAcrossReloads(t *testing.T) {
	backing, err := storage.New(t.TempDir())
	require.NoError(t, err)

	s := New(backing, logging.NewNop())
	s.AddTags([]types.Tag{tag("1", "1girl"), tag("2", "solo")})
	s.ReorderTags(0, 1)

	reloaded := New(backing, logging.NewNop())
	assert.Equal(t, "solo, 1girl", reloaded.FormatPrompt())
}
