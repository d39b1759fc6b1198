package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bnn-network/perplexed/internal/cache"
	"github.com/bnn-network/perplexed/internal/helpers"
	"github.com/bnn-network/perplexed/internal/telemetry"
	"github.com/bnn-network/perplexed/internal/tokens"
	"github.com/bnn-network/perplexed/provider"
)

// AnswerComposer builds a bounded prompt from ranked documents plus the
// conversation so far and asks the model for a cited answer. Answers are
// memoized by the raw question string.
type AnswerComposer struct {
	LLM             provider.Provider
	Cache           cache.Store
	MinDocTokens    int // documents below this are left out of the prompt
	MaxAnswerTokens int
	MaxQueryTokens  int
	MaxSystemChars  int
	Telemetry       *telemetry.Telemetry
	Logger          *log.Logger
}

// Answer produces the response text for question. Cache hits and identity
// questions return immediately; otherwise the model is called once for a
// framing query and once for the answer. Remote failures propagate to the
// caller with no retries.
func (c *AnswerComposer) Answer(ctx context.Context, question string, docs []Document, history []ConversationTurn) (string, error) {
	if cached, ok, err := c.Cache.Get(ctx, question); err != nil {
		c.Logger.Printf("cache get failed: %v", err)
	} else if ok {
		c.Logger.Printf("cache hit for: %s", question)
		c.Telemetry.CacheHits.Inc()
		return cached, nil
	}

	if identity, ok := c.IdentityAnswer(question); ok {
		c.store(ctx, question, identity)
		return identity, nil
	}

	usable := usableDocuments(docs, c.MinDocTokens)
	if len(usable) == 0 {
		c.store(ctx, question, fallbackAnswer)
		return fallbackAnswer, nil
	}

	historyStr := historyString(history)
	searchQuery, err := c.generateSearchQuery(ctx, question, historyStr)
	if err != nil {
		return "", err
	}
	c.Logger.Printf("generated search query: %s", searchQuery)

	systemContent := buildSystemContent(usable, historyStr, searchQuery)
	if len(systemContent) > c.MaxSystemChars {
		systemContent = systemContent[:c.MaxSystemChars]
	}

	answer, err := c.LLM.Complete(ctx, systemContent, searchQuery, c.MaxAnswerTokens)
	if err != nil {
		return "", fmt.Errorf("answer generation: %w", err)
	}
	answer = helpers.LinkCitations(answer, documentURLs(docs))

	c.store(ctx, question, answer)
	return answer, nil
}

// IdentityAnswer reports whether question belongs to the fixed set of
// self-referential prompts answered without any search or model work.
func (c *AnswerComposer) IdentityAnswer(question string) (string, bool) {
	answer, ok := identityAnswers[strings.ToLower(strings.TrimSpace(question))]
	return answer, ok
}

// generateSearchQuery asks a lightweight model call for a short query that
// frames the prompt. It is not used to re-search.
func (c *AnswerComposer) generateSearchQuery(ctx context.Context, question, historyStr string) (string, error) {
	user := fmt.Sprintf(queryGenUserTemplate, historyStr, question)
	query, err := c.LLM.Complete(ctx, queryGenSystemPrompt, user, c.MaxQueryTokens)
	if err != nil {
		return "", fmt.Errorf("query generation: %w", err)
	}
	return strings.Trim(strings.TrimSpace(query), `"`), nil
}

func (c *AnswerComposer) store(ctx context.Context, question, answer string) {
	if question == "" || answer == "" {
		return
	}
	if err := c.Cache.Set(ctx, question, answer); err != nil {
		c.Logger.Printf("cache set failed: %v", err)
	}
}

// usableDocuments drops documents whose extracted text is too thin to cite.
// The full set is still shown to the caller; only the prompt shrinks.
func usableDocuments(docs []Document, minTokens int) []Document {
	var out []Document
	for _, doc := range docs {
		if tokens.Count(doc.Text) >= minTokens {
			out = append(out, doc)
		}
	}
	return out
}

func documentURLs(docs []Document) map[int]string {
	urls := make(map[int]string, len(docs))
	for _, doc := range docs {
		urls[doc.ID] = doc.URL
	}
	return urls
}
