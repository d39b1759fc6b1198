// Package config loads service configuration from file and environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the answer service.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Search    SearchConfig    `mapstructure:"search"`
	Scrape    ScrapeConfig    `mapstructure:"scrape"`
	LLM       LLMConfig       `mapstructure:"llm"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheConfig     `mapstructure:"cache"`
	History   HistoryConfig   `mapstructure:"history"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address      string   `mapstructure:"address"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// SearchConfig selects and tunes the web-search provider.
type SearchConfig struct {
	Provider   string   `mapstructure:"provider"` // google, serper, brave
	APIKey     string   `mapstructure:"api_key"`
	EngineID   string   `mapstructure:"engine_id"` // Google Custom Search cx
	Blacklist  []string `mapstructure:"blacklist"`
	MaxResults int      `mapstructure:"max_results"`
}

// ScrapeConfig tunes the page fetcher.
type ScrapeConfig struct {
	Fetcher        string        `mapstructure:"fetcher"` // http, chromedp
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	MaxDocTokens   int           `mapstructure:"max_doc_tokens"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// LLMConfig configures the remote model provider.
type LLMConfig struct {
	Provider        string        `mapstructure:"provider"` // groq, openai
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	Model           string        `mapstructure:"model"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxAnswerTokens int           `mapstructure:"max_answer_tokens"`
	MaxQueryTokens  int           `mapstructure:"max_query_tokens"`
	MaxSystemChars  int           `mapstructure:"max_system_chars"`
	MinDocTokens    int           `mapstructure:"min_doc_tokens"`
}

// RateLimitConfig bounds token consumption over a rolling window.
type RateLimitConfig struct {
	MaxTokens int           `mapstructure:"max_tokens"`
	Window    time.Duration `mapstructure:"window"`
}

// CacheConfig selects the answer-cache backend.
type CacheConfig struct {
	Store string      `mapstructure:"store"` // inmemory, redis
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// HistoryConfig bounds the conversation window kept between turns.
type HistoryConfig struct {
	MaxTokens int `mapstructure:"max_tokens"`
}

// LoadConfig reads configuration from path (or the usual lookup locations
// when path is empty), with PERPLEXED_* environment variables taking
// precedence over file values.
func LoadConfig(path string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.address", ":10002")
	viper.SetDefault("server.allow_origins", []string{"*"})
	viper.SetDefault("search.provider", "google")
	viper.SetDefault("search.blacklist", []string{"quora.com", "www.quora.com"})
	viper.SetDefault("search.max_results", 4)
	viper.SetDefault("scrape.fetcher", "http")
	viper.SetDefault("scrape.connect_timeout", 3*time.Second)
	viper.SetDefault("scrape.read_timeout", 5*time.Second)
	viper.SetDefault("scrape.max_doc_tokens", 1000)
	viper.SetDefault("llm.provider", "groq")
	viper.SetDefault("llm.model", "llama3-8b-8192")
	viper.SetDefault("llm.timeout", 60*time.Second)
	viper.SetDefault("llm.max_answer_tokens", 4096)
	viper.SetDefault("llm.max_query_tokens", 50)
	viper.SetDefault("llm.max_system_chars", 8000)
	viper.SetDefault("llm.min_doc_tokens", 50)
	viper.SetDefault("rate_limit.max_tokens", 30000)
	viper.SetDefault("rate_limit.window", time.Minute)
	viper.SetDefault("cache.store", "inmemory")
	viper.SetDefault("history.max_tokens", 4000)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("PERPLEXED")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine; defaults plus env cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}
