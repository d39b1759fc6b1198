package chromedp

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/bnn-network/perplexed/tools/web_fetch/models"
	"github.com/chromedp/chromedp"
	readability "github.com/go-shiori/go-readability"
)

// Fetch renders pages in a headless browser before extraction. Slower than
// the plain HTTP fetcher but survives javascript-rendered content.
type Fetch struct {
	Timeout   time.Duration
	UserAgent string
}

func (f *Fetch) Exec(ctx context.Context, pageURL string) (models.Result, error) {
	if strings.TrimSpace(pageURL) == "" {
		return models.Result{}, errors.New("invalid url")
	}

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	html, err := fetchHTML(ctx, pageURL, f.UserAgent)
	if err != nil {
		return models.Result{}, err
	}

	article, err := readability.FromReader(strings.NewReader(html), mustParseURL(pageURL))
	if err != nil {
		return models.Result{}, err
	}

	return models.Result{
		URL:    pageURL,
		Title:  strings.TrimSpace(article.Title),
		Text:   strings.TrimSpace(article.TextContent),
		Status: 200,
	}, nil
}

func fetchHTML(ctx context.Context, url, userAgent string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.UserAgent(userAgent),
	)
	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(bctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	return html, err
}

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}
