package domain

// ItemPage is one page of normalized content items. Pages are 1-indexed.
type ItemPage struct {
	Items   []ContentItem `json:"items"`
	Total   int           `json:"total"`
	HasMore bool          `json:"hasMore"`
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
}

// SourcePage is one page of content items sources.
type SourcePage struct {
	Items   []ContentItemsSource `json:"items"`
	Total   int                  `json:"total"`
	HasMore bool                 `json:"hasMore"`
	Page    int                  `json:"page"`
	Limit   int                  `json:"limit"`
}
