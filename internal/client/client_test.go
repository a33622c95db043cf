package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azuma520/prompt-scribe/gateway/internal/domain/inspire"
	"github.com/azuma520/prompt-scribe/gateway/internal/infrastructure/config"
	"github.com/azuma520/prompt-scribe/gateway/internal/infrastructure/logging"
	"github.com/azuma520/prompt-scribe/gateway/internal/shared/types"
)

func newTestClient(url string, mock bool) *Client {
	return New(config.BackendConfig{URL: url, TimeoutSeconds: 5, UseMockData: mock}, logging.NewNop())
}

func TestStartConversation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/inspire/start", r.URL.Path)

		var req StartConversationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "孤獨又夢幻的感覺", req.Message)
		assert.Equal(t, "all-ages", req.UserAccessLevel)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(inspire.Response{
			SessionID: "sess-42",
			Type:      inspire.TypeDirections,
			Message:   "兩個方向給你",
			Phase:     inspire.PhaseExploring,
			Metadata:  inspire.ResponseMetadata{TurnCount: 1},
		})
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL, false).StartConversation(context.Background(), "孤獨又夢幻的感覺", "")
	require.NoError(t, err)
	assert.Equal(t, "sess-42", resp.SessionID)
	assert.Equal(t, inspire.PhaseExploring, resp.Phase)
}

func TestStartConversationBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "message too short"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, false).StartConversation(context.Background(), "hi", "")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "message too short", apiErr.Detail)
}

func TestBackendErrorWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, false).ContinueConversation(context.Background(), "s", "m")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "繼續對話失敗", apiErr.Detail)
}

func TestTransportErrorClassified(t *testing.T) {
	// A server that is immediately closed leaves a port nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, false).StartConversation(context.Background(), "hello", "")
	require.Error(t, err)

	var transport *TransportError
	require.True(t, errors.As(err, &transport))
	assert.NotEmpty(t, transport.Message)
}

func TestGetTagsResolvesCategory(t *testing.T) {
	sub := "HAIR"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/tags", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(types.TagsResponse{
			Data: []types.Tag{
				{ID: "1", Name: "long_hair", SubCategory: &sub},
				{ID: "2", Name: "mystery"},
			},
			Total: 2,
		})
	}))
	defer srv.Close()

	tags, err := newTestClient(srv.URL, false).GetTags(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "HAIR", tags[0].Category)
	assert.Equal(t, "OTHER", tags[1].Category)
}

func TestGetTagsClampsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(types.TagsResponse{Data: []types.Tag{}})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, false).GetTags(context.Background(), 5000)
	require.NoError(t, err)
}

func TestGetTagsMockMode(t *testing.T) {
	// Mock mode never reaches the network, an unroutable URL proves it.
	c := newTestClient("http://127.0.0.1:1", true)

	tags, err := c.GetTags(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "1girl", tags[0].Name)
	assert.Equal(t, "CHARACTER_COUNT", tags[0].Category)
}

func TestRecommendTagsDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/llm/recommend-tags", r.URL.Path)

		var req types.RecommendTagsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 20, req.MaxTags)
		assert.Equal(t, 100, req.MinPopularity)
		assert.True(t, req.ExcludeAdult)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(types.RecommendTagsResponse{Query: req.Description})
	}))
	defer srv.Close()

	out, err := newTestClient(srv.URL, false).RecommendTags(context.Background(), "moonlit girl", RecommendOptions{})
	require.NoError(t, err)
	assert.Equal(t, "moonlit girl", out.Query)
}

func TestValidatePrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/llm/validate-prompt", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(types.ValidationResult{
			OverallScore: 8.5,
			Issues:       []string{},
			Suggestions:  []string{"add lighting tags"},
		})
	}))
	defer srv.Close()

	out, err := newTestClient(srv.URL, false).ValidatePrompt(context.Background(), []string{"1girl", "solo"})
	require.NoError(t, err)
	assert.InDelta(t, 8.5, out.OverallScore, 0.001)
}

func TestForward(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"ok":false}`))
	}))
	defer srv.Close()

	status, body, err := newTestClient(srv.URL, false).Forward(context.Background(), http.MethodPost, "/api/inspire/start", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, status)
	assert.JSONEq(t, `{"ok":false}`, string(body))
}
