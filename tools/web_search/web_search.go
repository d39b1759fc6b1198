package web_search

import (
	"context"
	"errors"

	"github.com/bnn-network/perplexed/tools/web_search/brave"
	"github.com/bnn-network/perplexed/tools/web_search/google"
	"github.com/bnn-network/perplexed/tools/web_search/models"
	"github.com/bnn-network/perplexed/tools/web_search/serper"
)

// WebSearcher issues a query against an external search provider and returns
// up to k raw hits.
type WebSearcher interface {
	Discover(ctx context.Context, q string, k int) ([]models.Result, error)
}

type Provider string

const (
	GoogleProvider Provider = "google"
	SerperProvider Provider = "serper"
	BraveProvider  Provider = "brave"
)

var ErrUnsupportedProvider = errors.New("unsupported search provider")

// NewWebSearcher selects a provider backend. engineID is only meaningful for
// Google Custom Search (the cx parameter) and is ignored by the others.
func NewWebSearcher(provider Provider, apiKey, engineID string) (WebSearcher, error) {
	switch provider {
	case GoogleProvider:
		return google.Search{ApiKey: apiKey, EngineID: engineID}, nil
	case SerperProvider:
		return serper.Search{ApiKey: apiKey}, nil
	case BraveProvider:
		return brave.Search{ApiKey: apiKey}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
