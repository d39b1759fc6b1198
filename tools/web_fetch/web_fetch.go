package web_fetch

import (
	"context"
	"errors"
	"time"

	"github.com/bnn-network/perplexed/tools/web_fetch/chromedp"
	"github.com/bnn-network/perplexed/tools/web_fetch/httpfetch"
	"github.com/bnn-network/perplexed/tools/web_fetch/models"
)

const (
	DefaultConnectTimeout = 3 * time.Second
	DefaultReadTimeout    = 5 * time.Second
)

// WebFetcher downloads one page and extracts its readable text.
type WebFetcher interface {
	Exec(ctx context.Context, url string) (models.Result, error)
}

type FetcherType string

const (
	HTTPFetcherType     FetcherType = "http"
	ChromedpFetcherType FetcherType = "chromedp"
)

var ErrUnsupportedFetcher = errors.New("unsupported fetcher type")

// NewWebFetcher selects a fetcher backend. The plain HTTP fetcher is the
// default; chromedp renders javascript-heavy pages at the cost of a headless
// browser per fetch.
func NewWebFetcher(fetcherType FetcherType, connectTimeout, readTimeout time.Duration, userAgent string) (WebFetcher, error) {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	switch fetcherType {
	case HTTPFetcherType, "":
		return httpfetch.New(connectTimeout, readTimeout, userAgent), nil
	case ChromedpFetcherType:
		return &chromedp.Fetch{Timeout: connectTimeout + readTimeout, UserAgent: userAgent}, nil
	default:
		return nil, ErrUnsupportedFetcher
	}
}
