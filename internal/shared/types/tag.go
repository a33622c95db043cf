package types

// Tag is one entry of the backend tag catalog. Category is a display
// field resolved client-side from sub_category or main_category.
type Tag struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	DanbooruCat          int      `json:"danbooru_cat"`
	PostCount            int64    `json:"post_count"`
	MainCategory         *string  `json:"main_category"`
	SubCategory          *string  `json:"sub_category"`
	Confidence           *float64 `json:"confidence"`
	ClassificationSource *string  `json:"classification_source"`
	Category             string   `json:"category,omitempty"`
}

// TagsResponse is the paginated tag catalog response.
type TagsResponse struct {
	Data   []Tag `json:"data"`
	Total  int   `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// RecommendTagsRequest asks the backend for tags matching a description.
type RecommendTagsRequest struct {
	Description   string `json:"description"`
	MaxTags       int    `json:"max_tags"`
	MinPopularity int    `json:"min_popularity"`
	ExcludeAdult  bool   `json:"exclude_adult"`
}

// RecommendedTag is one scored recommendation.
type RecommendedTag struct {
	Tag            string  `json:"tag"`
	Confidence     float64 `json:"confidence"`
	PopularityTier string  `json:"popularity_tier"`
	PostCount      int64   `json:"post_count"`
	Category       string  `json:"category"`
	Subcategory    string  `json:"subcategory,omitempty"`
}

// QualityAssessment scores a recommended tag set as a whole.
type QualityAssessment struct {
	OverallScore float64  `json:"overall_score"`
	Warnings     []string `json:"warnings"`
	Suggestions  []string `json:"suggestions"`
}

// RecommendTagsResponse is the full recommendation result.
type RecommendTagsResponse struct {
	Query                string             `json:"query"`
	RecommendedTags      []RecommendedTag   `json:"recommended_tags"`
	CategoryDistribution map[string]int     `json:"category_distribution"`
	QualityAssessment    QualityAssessment  `json:"quality_assessment"`
	SuggestedPrompt      string             `json:"suggested_prompt"`
	Metadata             RecommendMetadata  `json:"metadata"`
}

// RecommendMetadata carries recommendation bookkeeping.
type RecommendMetadata struct {
	ProcessingTimeMS int64    `json:"processing_time_ms"`
	TotalCandidates  int      `json:"total_candidates"`
	Algorithm        string   `json:"algorithm"`
	CacheHit         bool     `json:"cache_hit"`
	KeywordsExtracted []string `json:"keywords_extracted,omitempty"`
	KeywordsExpanded  []string `json:"keywords_expanded,omitempty"`
}

// ValidationResult reports prompt quality issues for a tag list.
type ValidationResult struct {
	OverallScore float64    `json:"overall_score"`
	Issues       []string   `json:"issues"`
	Suggestions  []string   `json:"suggestions"`
	ConflictTags [][]string `json:"conflict_tags,omitempty"`
	RedundantTags []string  `json:"redundant_tags,omitempty"`
}

// DisplayCategory resolves the display category for a tag:
// sub_category first, then main_category, then OTHER.
func (t Tag) DisplayCategory() string {
	if t.SubCategory != nil && *t.SubCategory != "" {
		return *t.SubCategory
	}
	if t.MainCategory != nil && *t.MainCategory != "" {
		return *t.MainCategory
	}
	return "OTHER"
}
