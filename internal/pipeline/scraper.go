package pipeline

import (
	"context"
	"log"
	"sync"

	"github.com/bnn-network/perplexed/internal/helpers"
	"github.com/bnn-network/perplexed/internal/tokens"
	"github.com/bnn-network/perplexed/tools/web_fetch"
)

// ScraperPool fetches page text for a batch of documents concurrently, one
// worker per document, and joins before returning. A failed fetch never
// fails the batch: the document just keeps an empty text.
type ScraperPool struct {
	Fetcher      web_fetch.WebFetcher
	MaxDocTokens int
	Logger       *log.Logger
}

// ScrapeAll returns a slice of the same length and order as docs, each
// element carrying the same id/title/url with text filled in (or empty on
// an isolated failure).
func (p *ScraperPool) ScrapeAll(ctx context.Context, docs []Document) []Document {
	out := make([]Document, len(docs))
	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		go func(i int, doc Document) {
			defer wg.Done()
			out[i] = p.scrapeOne(ctx, doc)
		}(i, doc)
	}
	wg.Wait()
	return out
}

func (p *ScraperPool) scrapeOne(ctx context.Context, doc Document) Document {
	res, err := p.Fetcher.Exec(ctx, doc.URL)
	if err != nil {
		p.Logger.Printf("error scraping %s: %v", doc.URL, err)
		doc.Text = ""
		return doc
	}
	doc.Text = helpers.SanitizeText(tokens.Limit(res.Text, p.MaxDocTokens))
	return doc
}
