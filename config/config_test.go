package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Search.MaxResults != 4 {
		t.Errorf("search.max_results = %d, want 4", cfg.Search.MaxResults)
	}
	if cfg.Scrape.ConnectTimeout != 3*time.Second || cfg.Scrape.ReadTimeout != 5*time.Second {
		t.Errorf("scrape timeouts = %v/%v, want 3s/5s", cfg.Scrape.ConnectTimeout, cfg.Scrape.ReadTimeout)
	}
	if cfg.Scrape.MaxDocTokens != 1000 {
		t.Errorf("scrape.max_doc_tokens = %d, want 1000", cfg.Scrape.MaxDocTokens)
	}
	if cfg.LLM.MaxAnswerTokens != 4096 || cfg.LLM.MaxSystemChars != 8000 || cfg.LLM.MinDocTokens != 50 {
		t.Errorf("unexpected llm limits: %+v", cfg.LLM)
	}
	if cfg.RateLimit.MaxTokens != 30000 || cfg.RateLimit.Window != time.Minute {
		t.Errorf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
	if cfg.Cache.Store != "inmemory" {
		t.Errorf("cache.store = %q, want inmemory", cfg.Cache.Store)
	}
	if cfg.History.MaxTokens != 4000 {
		t.Errorf("history.max_tokens = %d, want 4000", cfg.History.MaxTokens)
	}
	if len(cfg.Search.Blacklist) != 2 {
		t.Errorf("expected default blacklist entries, got %v", cfg.Search.Blacklist)
	}
}
