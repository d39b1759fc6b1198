package pipeline

import (
	"fmt"
	"strings"
)

// identityAnswers short-circuits a small set of self-referential questions
// without touching the model. Keys are lowercased, trimmed prompts.
var identityAnswers = map[string]string{
	"who are you":  "I am ePiphany, an AI assistant created, owned, and operated by ePiphany AI.",
	"who made you": "I am ePiphany, an AI assistant created, owned, and operated by ePiphany AI.",
}

// fallbackAnswer is returned when no scraped document carries enough text to
// ground an answer.
const fallbackAnswer = "I apologize, but I couldn't find any relevant information to answer your question."

const answerSystemPrompt = `You are an AI assistant named ePiphany, created by ePiphany AI, that helps users find answers to their questions. When a user asks a question, search for relevant information from the provided documents and generate a comprehensive response that directly addresses their query. Integrate insights from multiple sources to provide a well-informed answer.

Respond to the user's question as if you are having a friendly conversation with them. Use a warm and engaging tone, and address the user directly using "you" and "your." Avoid sounding like an article or a formal report.

Format your response using the following guidelines:

- Use double newline characters (\n\n) to separate paragraphs.
- Use bullet points (- ) to present information in a structured manner, if necessary.
- Use bold (**text**) to emphasize important points, if necessary.
- Use italics (*text*) to add variety to your response, if necessary.
- Use citation markers in square brackets ([number]) to indicate the source of information, where [number] corresponds to the document ID.

Format the answer as markdown. After each sentence, cite the document information used using the exact syntax "[<ID>]". Check over your work. Remember to make your work clear and concise. Remember to cite the source after each sentence with the syntax "[ID]".

Aim to create a friendly, engaging, and informative tone in your response. Provide a comprehensive answer that satisfies the user's curiosity and leaves them feeling well-informed. Speak directly to the user as if you are ePiphany AI, without mentioning the names of the sources.`

const queryGenSystemPrompt = "You are a search query generator. Given a conversation history and a user prompt, generate a single relevant search query to find information related to the user's question. Keep the query simple and general."

const queryGenUserTemplate = "Conversation History:\n%s\n\nUser Prompt:\n%s\n\nGenerate a search query based on the conversation history and the user prompt."

// renderDocuments lays out the prompt-visible form of each document.
func renderDocuments(docs []Document) string {
	var b strings.Builder
	for _, doc := range docs {
		fmt.Fprintf(&b, "====\nDOCUMENT ID:%d\nDOCUMENT TITLE:%s\nDOCUMENT URL:%s\nDOCUMENT TEXT:%s\n", doc.ID, doc.Title, doc.URL, doc.Text)
	}
	return b.String()
}

// buildSystemContent assembles the full system turn: persona, documents,
// history and the framing query.
func buildSystemContent(docs []Document, history, query string) string {
	return fmt.Sprintf("====SYSTEM PROMPT:%s\n%s\n====CONVERSATION HISTORY:\n%s\n====QUESTION: %s",
		answerSystemPrompt, renderDocuments(docs), history, query)
}
