package pipeline

import (
	"fmt"
	"strings"
)

// Document is a single search result enriched with scraped page text. IDs
// are positive and unique within one pipeline run; text stays empty until
// the scrape stage fills it in.
type Document struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"`
}

// ConversationTurn is one prior user/assistant exchange. The JSON field
// names match what the web client sends.
type ConversationTurn struct {
	UserPrompt        string `json:"userPrompt"`
	AssistantResponse string `json:"assistantResponse"`
}

// Stage identifies one phase of the search-to-answer pipeline.
type Stage string

const (
	StageStarting        Stage = "Starting search"
	StageQueriedSearch   Stage = "Querying search"
	StageDownloadedPages Stage = "Downloading webpages"
	StageQueriedLLM      Stage = "Querying LLM"
	StageResultsReady    Stage = "Results ready"
)

// StageEvent is emitted once per completed stage and streamed to the caller
// as it happens.
type StageEvent struct {
	Success       bool       `json:"success"`
	Stage         Stage      `json:"stage"`
	NumTokensUsed int        `json:"num_tokens_used"`
	Documents     []Document `json:"websearch_docs"`
	Answer        string     `json:"answer"`
}

// Request is one incoming question plus its conversation history.
type Request struct {
	UserPrompt string
	History    []ConversationTurn
}

// historyString renders the conversation history the way it is embedded in
// prompts: alternating "User:"/"Assistant:" lines.
func historyString(history []ConversationTurn) string {
	var b strings.Builder
	for i, turn := range history {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "User: %s\nAssistant: %s", turn.UserPrompt, turn.AssistantResponse)
	}
	return b.String()
}

// originalTopic returns the first user prompt of the conversation, used to
// boost search results that stay on the conversation's subject.
func originalTopic(history []ConversationTurn) string {
	if len(history) == 0 {
		return ""
	}
	return history[0].UserPrompt
}
