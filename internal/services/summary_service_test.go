package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barenakeddev/intelliplan-sub000/internal/conversation"
	"github.com/barenakeddev/intelliplan-sub000/internal/llm"
)

// growConversation appends alternating user/assistant turns until the
// conversation holds n messages.
func growConversation(conv *conversation.Conversation, n int) {
	for i := conv.Len(); i < n; i++ {
		role := llm.RoleUser
		if i%2 == 1 {
			role = llm.RoleAssistant
		}
		conv.Append(role, fmt.Sprintf("message %d", i))
	}
}

func TestCompactIfNeededBelowCeiling(t *testing.T) {
	convs := conversation.NewStore()
	conv := convs.Create(conversation.Message{Role: llm.RoleSystem, Content: rfpSystemPrompt})
	growConversation(conv, maxMessagesBeforeCompaction)

	svc := NewSummaryService(clientFunc(func(ctx context.Context, req llm.CompletionRequest) (string, error) {
		t.Fatal("no summarization call expected at or below the ceiling")
		return "", nil
	}))

	svc.CompactIfNeeded(context.Background(), conv)
	assert.Equal(t, maxMessagesBeforeCompaction, conv.Len())
}

func TestCompactIfNeededRewritesHistory(t *testing.T) {
	convs := conversation.NewStore()
	conv := convs.Create(conversation.Message{Role: llm.RoleSystem, Content: rfpSystemPrompt})
	growConversation(conv, maxMessagesBeforeCompaction+3)

	svc := NewSummaryService(clientFunc(func(ctx context.Context, req llm.CompletionRequest) (string, error) {
		return "The planner is organizing a 200-person gala in March.", nil
	}))

	svc.CompactIfNeeded(context.Background(), conv)

	history := conv.History()
	require.Len(t, history, recentMessagesToKeep+2)
	assert.Equal(t, llm.RoleSystem, history[0].Role)
	assert.Equal(t, rfpSystemPrompt, history[0].Content)
	assert.Equal(t, llm.RoleAssistant, history[1].Role)
	assert.Equal(t, "Summary of the conversation so far: The planner is organizing a 200-person gala in March.", history[1].Content)

	// The raw tail survives verbatim and in order.
	last := history[len(history)-1]
	assert.Equal(t, fmt.Sprintf("message %d", maxMessagesBeforeCompaction+2), last.Content)

	// The message counter resets so the next ceiling check starts fresh.
	assert.Equal(t, recentMessagesToKeep+2, conv.Len())
}

func TestCompactIfNeededFailureLeavesHistoryUntouched(t *testing.T) {
	convs := conversation.NewStore()
	conv := convs.Create(conversation.Message{Role: llm.RoleSystem, Content: rfpSystemPrompt})
	growConversation(conv, maxMessagesBeforeCompaction+5)
	before := conv.History()

	svc := NewSummaryService(clientFunc(func(ctx context.Context, req llm.CompletionRequest) (string, error) {
		return "", llm.ErrUnavailable
	}))

	svc.CompactIfNeeded(context.Background(), conv)
	assert.Equal(t, before, conv.History())
}

func TestCompactWithoutSystemMessage(t *testing.T) {
	convs := conversation.NewStore()
	conv := convs.Create()
	growConversation(conv, maxMessagesBeforeCompaction+2)

	svc := NewSummaryService(clientFunc(func(ctx context.Context, req llm.CompletionRequest) (string, error) {
		return "summary", nil
	}))

	require.NoError(t, svc.Compact(context.Background(), conv))
	history := conv.History()
	require.NotEmpty(t, history)
	// A system message is reconstructed at position 0 even when the
	// original history lost it.
	assert.Equal(t, llm.RoleSystem, history[0].Role)
	assert.Equal(t, rfpSystemPrompt, history[0].Content)
}
