package models

// Result is the extracted readable content of one fetched page.
type Result struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Text   string `json:"text"`
	Status int    `json:"status"`
}
