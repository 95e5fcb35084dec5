package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/barenakeddev/intelliplan-sub000/internal/conversation"
	"github.com/barenakeddev/intelliplan-sub000/internal/llm"
)

const (
	// maxMessagesBeforeCompaction is the message-count ceiling; once a
	// conversation grows past it the next reply attempt compacts history.
	maxMessagesBeforeCompaction = 30

	// recentMessagesToKeep is how many raw trailing messages survive
	// compaction alongside the synthetic summary.
	recentMessagesToKeep = 10
)

// SummaryService keeps conversation histories bounded so completion calls
// stay within the model's context limits without losing factual content.
type SummaryService struct {
	llm llm.Client
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(client llm.Client) *SummaryService {
	return &SummaryService{llm: client}
}

// CompactIfNeeded compacts the conversation when its message count has grown
// past the ceiling. A failed summarization call is non-fatal: history is left
// untouched, a warning is logged, and the next append is a fresh opportunity.
func (s *SummaryService) CompactIfNeeded(ctx context.Context, conv *conversation.Conversation) {
	if conv.Len() <= maxMessagesBeforeCompaction {
		return
	}
	if err := s.Compact(ctx, conv); err != nil {
		log.Printf("WARN [SummaryService] compaction failed for conversation %s (history kept as-is): %v", conv.ID, err)
	}
}

// Compact rewrites the history as [original system prompt, one synthetic
// assistant message wrapping a dense factual summary, the most recent raw
// messages] and resets the message counter to the new length.
func (s *SummaryService) Compact(ctx context.Context, conv *conversation.Conversation) error {
	history := conv.History()
	if len(history) == 0 {
		return nil
	}

	systemMsg, rest := partitionSystem(history)

	summary, err := s.summarize(ctx, rest)
	if err != nil {
		return fmt.Errorf("summarizing history: %w", err)
	}

	recent := rest
	if len(recent) > recentMessagesToKeep {
		recent = recent[len(recent)-recentMessagesToKeep:]
	}

	compacted := make([]conversation.Message, 0, len(recent)+2)
	compacted = append(compacted, systemMsg)
	compacted = append(compacted, conversation.Message{
		Role:    llm.RoleAssistant,
		Content: "Summary of the conversation so far: " + summary,
	})
	compacted = append(compacted, recent...)

	conv.ReplaceHistory(compacted)
	log.Printf("[SummaryService] compacted conversation %s: %d -> %d messages", conv.ID, len(history), len(compacted))
	return nil
}

// partitionSystem splits the history into the original system prompt and the
// remaining messages in order. Conversations are always seeded with a system
// prompt; if one is somehow absent, the standard prompt stands in so that
// compaction still leaves a system message at position 0.
func partitionSystem(history []conversation.Message) (conversation.Message, []conversation.Message) {
	rest := make([]conversation.Message, 0, len(history))
	systemMsg := conversation.Message{Role: llm.RoleSystem, Content: rfpSystemPrompt}
	found := false
	for _, m := range history {
		if !found && m.Role == llm.RoleSystem {
			systemMsg = m
			found = true
			continue
		}
		rest = append(rest, m)
	}
	return systemMsg, rest
}

func (s *SummaryService) summarize(ctx context.Context, msgs []conversation.Message) (string, error) {
	var transcript strings.Builder
	for _, m := range msgs {
		transcript.WriteString(m.Role)
		transcript.WriteString(": ")
		transcript.WriteString(m.Content)
		transcript.WriteString("\n")
	}

	text, err := s.llm.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: summarySystemPrompt},
			{Role: llm.RoleUser, Content: transcript.String()},
		},
		Temperature: 0.3,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
