package pipeline

import (
	"context"
	"errors"
	"testing"

	searchmodels "github.com/bnn-network/perplexed/tools/web_search/models"
)

func newSearchClient(s *stubSearcher) *SearchClient {
	return &SearchClient{
		Searcher:   s,
		Blacklist:  []string{"quora.com", "www.quora.com"},
		MaxResults: 4,
		Logger:     discardLogger(),
	}
}

func TestSearch_EmptyQuerySkipsProvider(t *testing.T) {
	s := &stubSearcher{}
	c := newSearchClient(s)
	docs := c.Search(context.Background(), "   ", "")
	if len(docs) != 0 {
		t.Fatalf("expected no documents, got %d", len(docs))
	}
	if s.calls != 0 {
		t.Errorf("provider should not be called for a blank query, got %d calls", s.calls)
	}
}

func TestSearch_ProviderErrorDegradesToEmpty(t *testing.T) {
	s := &stubSearcher{err: errors.New("quota exceeded")}
	c := newSearchClient(s)
	docs := c.Search(context.Background(), "anything", "")
	if docs == nil || len(docs) != 0 {
		t.Fatalf("provider error must degrade to an empty, non-nil set, got %v", docs)
	}
}

func TestSearch_BlacklistAndIDs(t *testing.T) {
	s := &stubSearcher{results: []searchmodels.Result{
		{Title: "Quora thread", URL: "https://www.quora.com/some-question"},
		{Title: "Paris", URL: "https://en.wikipedia.org/wiki/Paris"},
		{Title: "France travel", URL: "https://example.com/france"},
	}}
	c := newSearchClient(s)
	docs := c.Search(context.Background(), "capital of France", "")
	if len(docs) != 2 {
		t.Fatalf("expected blacklisted host dropped, got %d docs", len(docs))
	}
	if docs[0].URL != "https://en.wikipedia.org/wiki/Paris" || docs[0].ID != 1 {
		t.Errorf("unexpected first doc: %+v", docs[0])
	}
	if docs[1].ID != 2 {
		t.Errorf("ids must be sequential after filtering, got %d", docs[1].ID)
	}
}

func TestSearch_TopicBoostIsStable(t *testing.T) {
	s := &stubSearcher{results: []searchmodels.Result{
		{Title: "A", URL: "https://a.example/1", Snippet: "nothing"},
		{Title: "B about Rust", URL: "https://b.example/2", Snippet: ""},
		{Title: "C", URL: "https://c.example/3", Snippet: "all about rust programming"},
		{Title: "D", URL: "https://d.example/4", Snippet: "nothing"},
	}}
	c := newSearchClient(s)
	docs := c.Search(context.Background(), "memory safety", "Rust")
	want := []string{"https://b.example/2", "https://c.example/3", "https://a.example/1", "https://d.example/4"}
	if len(docs) != 4 {
		t.Fatalf("got %d docs, want 4", len(docs))
	}
	for i, url := range want {
		if docs[i].URL != url {
			t.Errorf("docs[%d].URL = %s, want %s", i, docs[i].URL, url)
		}
	}
}

func TestSearch_CapAppliedAfterBoost(t *testing.T) {
	// The boosted hit sits past the cap in provider order; applying the cap
	// last must keep it.
	s := &stubSearcher{results: []searchmodels.Result{
		{Title: "one", URL: "https://x.example/1"},
		{Title: "two", URL: "https://x.example/2"},
		{Title: "three", URL: "https://x.example/3"},
		{Title: "four", URL: "https://x.example/4"},
		{Title: "gopher deep dive", URL: "https://x.example/5"},
	}}
	c := newSearchClient(s)
	docs := c.Search(context.Background(), "q", "gopher")
	if len(docs) != 4 {
		t.Fatalf("got %d docs, want cap of 4", len(docs))
	}
	if docs[0].URL != "https://x.example/5" {
		t.Errorf("boosted hit should lead the capped set, got %s", docs[0].URL)
	}
}

func TestSearch_TitlesSanitized(t *testing.T) {
	s := &stubSearcher{results: []searchmodels.Result{
		{Title: "<b>Bold</b> & plain", URL: "https://x.example/1"},
	}}
	c := newSearchClient(s)
	docs := c.Search(context.Background(), "q", "")
	if docs[0].Title != "Bold &amp; plain" {
		t.Errorf("title = %q, want sanitized and escaped", docs[0].Title)
	}
}
