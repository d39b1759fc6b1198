package pipeline

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/bnn-network/perplexed/internal/cache"
	"github.com/bnn-network/perplexed/internal/ratelimit"
	"github.com/bnn-network/perplexed/internal/telemetry"
	fetchmodels "github.com/bnn-network/perplexed/tools/web_fetch/models"
	searchmodels "github.com/bnn-network/perplexed/tools/web_search/models"
	"github.com/prometheus/client_golang/prometheus"
)

type stubSearcher struct {
	mu      sync.Mutex
	results []searchmodels.Result
	err     error
	calls   int
}

func (s *stubSearcher) Discover(_ context.Context, _ string, _ int) ([]searchmodels.Result, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.results, s.err
}

// stubFetcher serves canned page text by URL; URLs in fail error out.
type stubFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	fail  map[string]bool
	calls int
}

func (f *stubFetcher) Exec(_ context.Context, url string) (fetchmodels.Result, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.fail[url] {
		return fetchmodels.Result{}, errors.New("connection refused")
	}
	return fetchmodels.Result{URL: url, Text: f.pages[url], Status: 200}, nil
}

// stubLLM answers the framing-query call and the answer call separately,
// telling them apart by the system prompt.
type stubLLM struct {
	mu          sync.Mutex
	query       string
	answer      string
	err         error
	calls       int
	lastSystem  string
	lastUser    string
	seenSystems []string
}

func (l *stubLLM) Complete(_ context.Context, system, user string, _ int) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	l.lastSystem = system
	l.lastUser = user
	l.seenSystems = append(l.seenSystems, system)
	if l.err != nil {
		return "", l.err
	}
	if system == queryGenSystemPrompt {
		return l.query, nil
	}
	return l.answer, nil
}

func discardLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func newTestTelemetry() *telemetry.Telemetry {
	return telemetry.New(prometheus.NewRegistry())
}

// testPipeline assembles a pipeline around the given stubs with the
// production default budgets.
func testPipeline(searcher *stubSearcher, fetcher *stubFetcher, llm *stubLLM, limiter *ratelimit.Limiter) *Pipeline {
	tele := newTestTelemetry()
	logger := discardLogger()
	return &Pipeline{
		Search: &SearchClient{
			Searcher:   searcher,
			Blacklist:  []string{"quora.com", "www.quora.com"},
			MaxResults: 4,
			Logger:     logger,
		},
		Scraper: &ScraperPool{
			Fetcher:      fetcher,
			MaxDocTokens: 1000,
			Logger:       logger,
		},
		Composer: &AnswerComposer{
			LLM:             llm,
			Cache:           cache.NewInMemoryStore(),
			MinDocTokens:    50,
			MaxAnswerTokens: 4096,
			MaxQueryTokens:  50,
			MaxSystemChars:  8000,
			Telemetry:       tele,
			Logger:          logger,
		},
		Limiter:          limiter,
		Telemetry:        tele,
		Logger:           logger,
		HistoryMaxTokens: 4000,
	}
}

// collectEvents drains a pipeline run into a slice.
func collectEvents(p *Pipeline, req Request) ([]StageEvent, string, error) {
	events := make(chan StageEvent)
	type result struct {
		history string
		err     error
	}
	done := make(chan result, 1)
	go func() {
		defer close(events)
		history, err := p.Run(context.Background(), req, events)
		done <- result{history, err}
	}()
	var out []StageEvent
	for ev := range events {
		out = append(out, ev)
	}
	res := <-done
	return out, res.history, res.err
}

// repeat builds a text of n whitespace tokens.
func repeat(word string, n int) string {
	s := word
	for i := 1; i < n; i++ {
		s += " " + word
	}
	return s
}
