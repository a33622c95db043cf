package client

import "github.com/azuma520/prompt-scribe/gateway/internal/shared/types"

func strPtr(s string) *string { return &s }

// mockTags mirrors the head of the real catalog, enough for offline
// development of the workspace and tag pages.
var mockTags = []types.Tag{
	{ID: "302", Name: "1girl", DanbooruCat: 0, PostCount: 96138304, MainCategory: strPtr("CHARACTER_RELATED"), SubCategory: strPtr("CHARACTER_COUNT")},
	{ID: "44139", Name: "highres", DanbooruCat: 5, PostCount: 84099120, MainCategory: strPtr("TECHNICAL")},
	{ID: "114286", Name: "solo", DanbooruCat: 0, PostCount: 80015264, MainCategory: strPtr("CHARACTER_RELATED"), SubCategory: strPtr("CHARACTER_COUNT")},
	{ID: "68025", Name: "long_hair", DanbooruCat: 0, PostCount: 69611888, MainCategory: strPtr("CHARACTER_RELATED"), SubCategory: strPtr("HAIR")},
	{ID: "16229", Name: "smile", DanbooruCat: 0, PostCount: 48648624, MainCategory: strPtr("CHARACTER_RELATED"), SubCategory: strPtr("EXPRESSION")},
	{ID: "71730", Name: "looking_at_viewer", DanbooruCat: 0, PostCount: 44871428, MainCategory: strPtr("COMPOSITION")},
	{ID: "13197", Name: "blue_eyes", DanbooruCat: 0, PostCount: 37077224, MainCategory: strPtr("CHARACTER_RELATED"), SubCategory: strPtr("EYES")},
	{ID: "10922", Name: "blonde_hair", DanbooruCat: 0, PostCount: 29883348, MainCategory: strPtr("CHARACTER_RELATED"), SubCategory: strPtr("HAIR")},
}

func mockCatalog(limit int) []types.Tag {
	if limit > len(mockTags) {
		limit = len(mockTags)
	}
	out := make([]types.Tag, limit)
	for i, t := range mockTags[:limit] {
		t.Category = t.DisplayCategory()
		out[i] = t
	}
	return out
}
