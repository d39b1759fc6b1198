// Package pipeline orchestrates one question through its staged run: search,
// concurrent scrape, answer composition. Exactly one StageEvent is sent per
// emitting stage, in order, through an unbuffered channel so the transport
// flushes each record before the next stage starts computing.
package pipeline

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bnn-network/perplexed/internal/ratelimit"
	"github.com/bnn-network/perplexed/internal/telemetry"
	"github.com/bnn-network/perplexed/internal/tokens"
	"github.com/google/uuid"
)

// ErrRateLimited is returned when the sliding-window budget rejects a run
// before any stage executes.
var ErrRateLimited = errors.New("rate limit exceeded")

// Pipeline wires the stages together. Limiter and the composer's cache are
// process-wide shared state; everything else is per-run.
type Pipeline struct {
	Search           *SearchClient
	Scraper          *ScraperPool
	Composer         *AnswerComposer
	Limiter          *ratelimit.Limiter
	Telemetry        *telemetry.Telemetry
	Logger           *log.Logger
	HistoryMaxTokens int
}

// Run executes one request, sending stage events on events as they complete.
// It returns the conversation history trimmed to the trailing token window,
// ready for the caller's next turn. The admission check happens before any
// stage: a rate-limited run sends no events and returns ErrRateLimited.
// Cancellation mid-run is not supported; in-flight remote calls finish on
// their own timeouts.
func (p *Pipeline) Run(ctx context.Context, req Request, events chan<- StageEvent) (string, error) {
	runID := uuid.NewString()

	if p.Limiter.IsOverLimit() {
		p.Logger.Printf("[%s] rejected: rate limit exceeded", runID)
		p.Telemetry.RateLimited.Inc()
		p.Telemetry.Runs.WithLabelValues("rate_limited").Inc()
		return "", ErrRateLimited
	}

	p.Logger.Printf("[%s] query: %s", runID, req.UserPrompt)

	// Identity questions never need search, scrape or a model call; the
	// run jumps straight to its terminal stage.
	if identity, ok := p.Composer.IdentityAnswer(req.UserPrompt); ok {
		events <- StageEvent{Success: true, Stage: StageResultsReady, Documents: []Document{}, Answer: identity}
		p.Telemetry.Runs.WithLabelValues("success").Inc()
		return tokens.Tail(historyString(req.History), p.HistoryMaxTokens), nil
	}

	searchStart := time.Now()
	docs := p.Search.Search(ctx, req.UserPrompt, originalTopic(req.History))
	p.Telemetry.StageDuration.WithLabelValues(string(StageQueriedSearch)).Observe(time.Since(searchStart).Seconds())
	events <- StageEvent{Success: true, Stage: StageQueriedSearch, Documents: docs}

	scrapeStart := time.Now()
	scraped := p.Scraper.ScrapeAll(ctx, docs)
	used := 0
	for _, doc := range scraped {
		used += tokens.Count(doc.Text)
	}
	p.Limiter.Record(used)
	p.Telemetry.TokensUsed.Add(float64(used))
	p.Telemetry.StageDuration.WithLabelValues(string(StageDownloadedPages)).Observe(time.Since(scrapeStart).Seconds())
	events <- StageEvent{Success: true, Stage: StageDownloadedPages, NumTokensUsed: used, Documents: scraped}

	composeStart := time.Now()
	answer, err := p.Composer.Answer(ctx, req.UserPrompt, scraped, req.History)
	p.Telemetry.StageDuration.WithLabelValues(string(StageQueriedLLM)).Observe(time.Since(composeStart).Seconds())
	if err != nil {
		p.Logger.Printf("[%s] answer failed: %v", runID, err)
		p.Telemetry.Runs.WithLabelValues("failed").Inc()
		events <- StageEvent{Success: false, Stage: StageResultsReady, NumTokensUsed: used, Documents: scraped}
		return "", err
	}

	history := tokens.Tail(historyString(req.History), p.HistoryMaxTokens)
	events <- StageEvent{Success: true, Stage: StageResultsReady, NumTokensUsed: used, Documents: scraped, Answer: answer}
	p.Telemetry.Runs.WithLabelValues("success").Inc()
	p.Logger.Printf("[%s] done, %d tokens of scraped content", runID, used)
	return history, nil
}
