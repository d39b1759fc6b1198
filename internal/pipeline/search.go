package pipeline

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/bnn-network/perplexed/internal/helpers"
	"github.com/bnn-network/perplexed/tools/web_search"
)

// discoverCount is how many raw hits are requested from the provider; the
// surplus over MaxResults absorbs blacklist losses before the final cap.
const discoverCount = 10

// SearchClient turns a question into a ranked, capped document list. It
// fails softly: provider errors and malformed payloads degrade to an empty
// result set rather than aborting the run.
type SearchClient struct {
	Searcher   web_search.WebSearcher
	Blacklist  []string
	MaxResults int
	Logger     *log.Logger
}

// Search resolves ranked candidate documents for query. Results from
// blacklisted hosts are dropped, results mentioning originalTopic are moved
// to the front (stable within both groups), and the cap is applied last so
// boosted hits are never cut ahead of ordinary ones. IDs are assigned 1..n
// on the surviving set.
func (c *SearchClient) Search(ctx context.Context, query, originalTopic string) []Document {
	if strings.TrimSpace(query) == "" {
		return []Document{}
	}

	results, err := c.Searcher.Discover(ctx, query, discoverCount)
	if err != nil {
		c.Logger.Printf("web search failed: %v", err)
		return []Document{}
	}

	topic := strings.ToLower(strings.TrimSpace(originalTopic))
	var boosted, ordinary []Document
	for _, r := range results {
		if c.blacklisted(r.URL) {
			continue
		}
		doc := Document{
			Title: helpers.SanitizeText(r.Title),
			URL:   r.URL,
		}
		if topic != "" &&
			(strings.Contains(strings.ToLower(r.Title), topic) || strings.Contains(strings.ToLower(r.Snippet), topic)) {
			boosted = append(boosted, doc)
		} else {
			ordinary = append(ordinary, doc)
		}
	}

	docs := append(boosted, ordinary...)
	if len(docs) > c.MaxResults {
		docs = docs[:c.MaxResults]
	}
	for i := range docs {
		docs[i].ID = i + 1
	}
	if docs == nil {
		docs = []Document{}
	}
	return docs
}

func (c *SearchClient) blacklisted(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return true
	}
	host := strings.ToLower(parsed.Hostname())
	for _, blocked := range c.Blacklist {
		if host == strings.ToLower(blocked) {
			return true
		}
	}
	return false
}
