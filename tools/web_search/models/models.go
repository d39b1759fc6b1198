package models

// Result is a single raw search hit as returned by a provider, before any
// ranking or filtering is applied.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}
