package llm

import (
	"context"
)

// Message roles understood by the chat-completion API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role-tagged turn of conditioning context.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest holds the parameters for one chat-completion call.
type CompletionRequest struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
	// JSONMode asks the API to constrain output to a single JSON object.
	// The returned string still has to be parsed (and may still be
	// malformed on upstream failure).
	JSONMode bool
}

// Client is the gateway to the external language-model completion service.
// Implementations must treat the upstream as unreliable: calls may time out,
// return empty content, or return invalid JSON when JSON was requested.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
