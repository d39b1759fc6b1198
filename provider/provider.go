// Package provider abstracts the remote language-model capability behind a
// small chat-completion interface so the pipeline can be tested without a
// live endpoint.
package provider

import (
	"context"
	"errors"
	"time"

	groq_provider "github.com/bnn-network/perplexed/provider/groq"
)

// Client represents different LLM providers
type Client string

const (
	Groq   Client = "groq"
	OpenAI Client = "openai"
)

// Provider is the interface that all LLM implementations must satisfy.
type Provider interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

// Options carries provider construction settings.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewProvider creates a new LLM client based on the provided configuration.
func NewProvider(client Client, opts Options) (Provider, error) {
	if opts.APIKey == "" {
		return nil, errors.New("llm api key not configured")
	}
	switch client {
	case Groq:
		if opts.BaseURL == "" {
			opts.BaseURL = groq_provider.DefaultBaseURL
		}
		return groq_provider.NewClient(opts.APIKey, opts.BaseURL, opts.Model, opts.Timeout), nil
	case OpenAI:
		// go-openai's default base URL already points at api.openai.com.
		return groq_provider.NewClient(opts.APIKey, opts.BaseURL, opts.Model, opts.Timeout), nil
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
