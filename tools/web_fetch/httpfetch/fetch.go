package httpfetch

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnn-network/perplexed/tools/web_fetch/models"
	readability "github.com/go-shiori/go-readability"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Fetch downloads pages over plain HTTP and extracts their readable body
// text with readability. Connect and read phases have separate budgets.
type Fetch struct {
	UserAgent string
	client    *http.Client
}

func New(connectTimeout, readTimeout time.Duration, userAgent string) *Fetch {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: readTimeout,
	}
	return &Fetch{
		UserAgent: userAgent,
		client: &http.Client{
			Transport: transport,
			Timeout:   connectTimeout + readTimeout,
		},
	}
}

func (f *Fetch) Exec(ctx context.Context, pageURL string) (models.Result, error) {
	if strings.TrimSpace(pageURL) == "" {
		return models.Result{}, fmt.Errorf("invalid url")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return models.Result{}, err
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return models.Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return models.Result{}, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	article, err := readability.FromReader(resp.Body, mustParseURL(pageURL))
	if err != nil {
		return models.Result{}, fmt.Errorf("extract %s: %w", pageURL, err)
	}

	return models.Result{
		URL:    pageURL,
		Title:  strings.TrimSpace(article.Title),
		Text:   strings.TrimSpace(article.TextContent),
		Status: resp.StatusCode,
	}, nil
}

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}
