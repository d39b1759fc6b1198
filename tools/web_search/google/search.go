package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bnn-network/perplexed/tools/web_search/models"
)

const defaultEndpoint = "https://www.googleapis.com/customsearch/v1"

type Search struct {
	ApiKey   string
	EngineID string
	Endpoint string // overridable for tests
}

func (s Search) Discover(ctx context.Context, q string, k int) ([]models.Result, error) {
	// https://developers.google.com/custom-search/v1/reference/rest
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	params := url.Values{}
	params.Set("key", s.ApiKey)
	params.Set("cx", s.EngineID)
	params.Set("q", q)
	if k > 0 {
		params.Set("num", fmt.Sprintf("%d", k))
	}
	req, _ := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google search returned status %d", resp.StatusCode)
	}
	var raw struct {
		Items []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	var out []models.Result
	for i, item := range raw.Items {
		if k > 0 && i >= k {
			break
		}
		out = append(out, models.Result{Title: item.Title, URL: item.Link, Snippet: item.Snippet})
	}
	return out, nil
}
