// Package groq_provider implements the provider interface against Groq's
// OpenAI-compatible chat-completions API.
package groq_provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const DefaultBaseURL = "https://api.groq.com/openai/v1"

type Client struct {
	api   *openai.Client
	model string
}

// NewClient builds a chat-completion client. An empty baseURL targets the
// stock OpenAI endpoint, which lets this one implementation serve both
// providers.
func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	return &Client{api: openai.NewClientWithConfig(cfg), model: model}
}

// Complete sends one system+user exchange and returns the generated text.
func (c *Client) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
		{Role: openai.ChatMessageRoleUser, Content: user},
	}
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}
