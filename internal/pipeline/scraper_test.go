package pipeline

import (
	"context"
	"testing"

	"github.com/bnn-network/perplexed/internal/tokens"
)

func TestScrapeAll_PreservesShape(t *testing.T) {
	f := &stubFetcher{
		pages: map[string]string{
			"https://a.example": "alpha text body",
			"https://c.example": "gamma text body",
		},
		fail: map[string]bool{"https://b.example": true},
	}
	p := &ScraperPool{Fetcher: f, MaxDocTokens: 1000, Logger: discardLogger()}

	in := []Document{
		{ID: 1, Title: "A", URL: "https://a.example"},
		{ID: 2, Title: "B", URL: "https://b.example"},
		{ID: 3, Title: "C", URL: "https://c.example"},
	}
	out := p.ScrapeAll(context.Background(), in)
	if len(out) != len(in) {
		t.Fatalf("got %d docs, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].ID != in[i].ID || out[i].Title != in[i].Title || out[i].URL != in[i].URL {
			t.Errorf("doc %d identity changed: %+v", i, out[i])
		}
	}
	if out[0].Text != "alpha text body" {
		t.Errorf("doc 0 text = %q", out[0].Text)
	}
	if out[1].Text != "" {
		t.Errorf("failed fetch must leave empty text, got %q", out[1].Text)
	}
	if out[2].Text != "gamma text body" {
		t.Errorf("doc 2 text = %q", out[2].Text)
	}
}

func TestScrapeAll_TruncatesToTokenCeiling(t *testing.T) {
	f := &stubFetcher{pages: map[string]string{
		"https://long.example": repeat("word", 5000),
	}}
	p := &ScraperPool{Fetcher: f, MaxDocTokens: 1000, Logger: discardLogger()}

	out := p.ScrapeAll(context.Background(), []Document{{ID: 1, URL: "https://long.example"}})
	if got := tokens.Count(out[0].Text); got != 1000 {
		t.Errorf("scraped text has %d tokens, want 1000", got)
	}
}

func TestScrapeAll_EmptyBatch(t *testing.T) {
	p := &ScraperPool{Fetcher: &stubFetcher{}, MaxDocTokens: 1000, Logger: discardLogger()}
	out := p.ScrapeAll(context.Background(), nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("empty batch should yield empty non-nil slice, got %v", out)
	}
}
