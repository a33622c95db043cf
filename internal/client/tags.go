package client

import (
	"context"
	"strconv"

	"github.com/azuma520/prompt-scribe/gateway/internal/shared/types"
)

// The catalog endpoint caps page size at 100.
const maxCatalogLimit = 100

// RecommendOptions tune a tag recommendation request. Zero values take
// the product defaults.
type RecommendOptions struct {
	MaxTags       int
	MinPopularity int
	IncludeAdult  bool
}

// RecommendTags asks the backend for tags matching a free-text
// description.
func (c *Client) RecommendTags(ctx context.Context, description string, opts RecommendOptions) (*types.RecommendTagsResponse, error) {
	req := types.RecommendTagsRequest{
		Description:   description,
		MaxTags:       opts.MaxTags,
		MinPopularity: opts.MinPopularity,
		ExcludeAdult:  !opts.IncludeAdult,
	}
	if req.MaxTags <= 0 {
		req.MaxTags = 20
	}
	if req.MinPopularity <= 0 {
		req.MinPopularity = 100
	}

	var out types.RecommendTagsResponse
	resp, err := c.resty.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/api/llm/recommend-tags")
	if err != nil {
		return nil, classifyTransport(err)
	}
	if !resp.IsSuccess() {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Detail:     errorDetail(resp.Body(), "推薦標籤失敗"),
		}
	}
	return &out, nil
}

// ValidatePrompt checks a tag list for conflicts and redundancy.
func (c *Client) ValidatePrompt(ctx context.Context, tags []string) (*types.ValidationResult, error) {
	var out types.ValidationResult
	resp, err := c.resty.R().
		SetContext(ctx).
		SetBody(map[string][]string{"tags": tags}).
		SetResult(&out).
		Post("/api/llm/validate-prompt")
	if err != nil {
		return nil, classifyTransport(err)
	}
	if !resp.IsSuccess() {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Detail:     errorDetail(resp.Body(), "驗證 Prompt 失敗"),
		}
	}
	return &out, nil
}

// GetTags fetches the tag catalog, clamping limit to the API bounds and
// resolving each tag's display category. The mock toggle serves the
// embedded catalog without touching the network.
func (c *Client) GetTags(ctx context.Context, limit int) ([]types.Tag, error) {
	limit = clampLimit(limit)

	if c.mock {
		return mockCatalog(limit), nil
	}

	var out types.TagsResponse
	resp, err := c.resty.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&out).
		Get("/api/v1/tags")
	if err != nil {
		return nil, classifyTransport(err)
	}
	if !resp.IsSuccess() {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Detail:     errorDetail(resp.Body(), "取得標籤失敗"),
		}
	}

	tags := make([]types.Tag, 0, len(out.Data))
	for _, t := range out.Data {
		t.Category = t.DisplayCategory()
		tags = append(tags, t)
	}
	return tags, nil
}

func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > maxCatalogLimit {
		return maxCatalogLimit
	}
	return limit
}
