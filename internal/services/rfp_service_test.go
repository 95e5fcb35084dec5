package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barenakeddev/intelliplan-sub000/internal/conversation"
	"github.com/barenakeddev/intelliplan-sub000/internal/llm"
)

// newRFPService wires a full orchestrator stack around the given gateway.
func newRFPService(client llm.Client) (*RFPService, *conversation.Store) {
	convs := conversation.NewStore()
	summaries := NewSummaryService(client)
	extraction := NewExtractionService(client, convs, nil)
	return NewRFPService(client, convs, summaries, extraction), convs
}

func TestCreateConversation(t *testing.T) {
	svc, convs := newRFPService(clientFunc(func(ctx context.Context, req llm.CompletionRequest) (string, error) {
		t.Fatal("conversation creation must not call the gateway")
		return "", nil
	}))

	resp := svc.CreateConversation()
	require.NotEmpty(t, resp.ConversationID)
	assert.Equal(t, initialGreeting, resp.Message)

	conv, err := convs.Get(resp.ConversationID)
	require.NoError(t, err)
	history := conv.History()
	require.Len(t, history, 2)
	assert.Equal(t, llm.RoleSystem, history[0].Role)
	assert.Equal(t, llm.RoleAssistant, history[1].Role)
}

func TestReplyEmptyMessage(t *testing.T) {
	svc, _ := newRFPService(clientFunc(func(ctx context.Context, req llm.CompletionRequest) (string, error) {
		return "", nil
	}))

	_, err := svc.Reply(context.Background(), "anything", "")
	require.ErrorIs(t, err, ErrEmptyMessage)
}

func TestReplyAppendsExchange(t *testing.T) {
	client := clientFunc(func(ctx context.Context, req llm.CompletionRequest) (string, error) {
		if req.JSONMode {
			return `{}`, nil
		}
		return "What date are you considering?", nil
	})
	svc, convs := newRFPService(client)

	created := svc.CreateConversation()
	resp, err := svc.Reply(context.Background(), created.ConversationID, "We need a venue for 200 people.")
	require.NoError(t, err)
	assert.Equal(t, created.ConversationID, resp.ConversationID)
	assert.Equal(t, "What date are you considering?", resp.Message)

	conv, err := convs.Get(created.ConversationID)
	require.NoError(t, err)
	history := conv.History()
	require.Len(t, history, 4)
	assert.Equal(t, llm.RoleUser, history[2].Role)
	assert.Equal(t, "We need a venue for 200 people.", history[2].Content)
	assert.Equal(t, llm.RoleAssistant, history[3].Role)
}

func TestReplyAutoCreatesUnknownConversation(t *testing.T) {
	client := clientFunc(func(ctx context.Context, req llm.CompletionRequest) (string, error) {
		if req.JSONMode {
			return `{}`, nil
		}
		return "Happy to help with your event.", nil
	})
	svc, convs := newRFPService(client)

	resp, err := svc.Reply(context.Background(), "never-seen-before", "Hi, I need a venue.")
	require.NoError(t, err)
	assert.NotEqual(t, "never-seen-before", resp.ConversationID)

	conv, err := convs.Get(resp.ConversationID)
	require.NoError(t, err)
	// System prompt, greeting, user message, assistant reply.
	assert.Equal(t, 4, conv.Len())
}

func TestReplyGatewayFailurePropagates(t *testing.T) {
	svc, _ := newRFPService(clientFunc(func(ctx context.Context, req llm.CompletionRequest) (string, error) {
		return "", llm.ErrUnavailable
	}))

	created := svc.CreateConversation()
	_, err := svc.Reply(context.Background(), created.ConversationID, "hello")
	require.ErrorIs(t, err, llm.ErrUnavailable)
}

func TestReplyTriggersBackgroundExtraction(t *testing.T) {
	client := clientFunc(func(ctx context.Context, req llm.CompletionRequest) (string, error) {
		if req.JSONMode {
			return `{"eventName": {"value": "Gala", "confidence": 0.9}}`, nil
		}
		return "Noted!", nil
	})
	svc, convs := newRFPService(client)

	created := svc.CreateConversation()
	_, err := svc.Reply(context.Background(), created.ConversationID, "It's our annual gala.")
	require.NoError(t, err)

	conv, err := convs.Get(created.ConversationID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		result := conv.Extraction()
		return result != nil && len(result.Fields) > 0
	}, 2*time.Second, 10*time.Millisecond, "extraction should run in the background once the exchange is long enough")
}

func TestReplyCompactsLongHistory(t *testing.T) {
	client := clientFunc(func(ctx context.Context, req llm.CompletionRequest) (string, error) {
		if req.JSONMode {
			return `{}`, nil
		}
		if req.Messages[0].Content == summarySystemPrompt {
			return "dense summary of the planning discussion", nil
		}
		return "assistant reply", nil
	})
	svc, convs := newRFPService(client)

	created := svc.CreateConversation()
	conv, err := convs.Get(created.ConversationID)
	require.NoError(t, err)
	for i := conv.Len(); i < maxMessagesBeforeCompaction+3; i++ {
		role := llm.RoleUser
		if i%2 == 1 {
			role = llm.RoleAssistant
		}
		conv.Append(role, fmt.Sprintf("turn %d", i))
	}

	_, err = svc.Reply(context.Background(), created.ConversationID, "one more thing")
	require.NoError(t, err)

	history := conv.History()
	// Compaction ran before the reply: system prompt, summary, the raw
	// tail (which ends with the new user message), then the new reply.
	require.LessOrEqual(t, len(history), recentMessagesToKeep+3)
	assert.Equal(t, llm.RoleSystem, history[0].Role)
	assert.Contains(t, history[1].Content, "Summary of the conversation so far:")
	assert.Equal(t, "assistant reply", history[len(history)-1].Content)
}

func TestReplySerializesPerConversation(t *testing.T) {
	client := clientFunc(func(ctx context.Context, req llm.CompletionRequest) (string, error) {
		if req.JSONMode {
			return `{}`, nil
		}
		return "ok", nil
	})
	svc, convs := newRFPService(client)
	created := svc.CreateConversation()

	// 10 replies keeps the history under the compaction ceiling so the
	// pair structure below stays checkable.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Reply(context.Background(), created.ConversationID, fmt.Sprintf("concurrent message %d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	conv, err := convs.Get(created.ConversationID)
	require.NoError(t, err)
	history := conv.History()
	// Each reply appends a user/assistant pair; interleaving must never
	// split a pair.
	for i := 2; i+1 < len(history); i += 2 {
		assert.Equal(t, llm.RoleUser, history[i].Role)
		assert.Equal(t, llm.RoleAssistant, history[i+1].Role)
	}
}

// This covers the failure-isolation contract across the whole pipeline: a
// dead gateway breaks replies loudly while extraction and recommendations
// degrade to empty results.
func TestPipelineFailureIsolation(t *testing.T) {
	dead := clientFunc(func(ctx context.Context, req llm.CompletionRequest) (string, error) {
		return "", llm.ErrUnavailable
	})
	convs := conversation.NewStore()
	summaries := NewSummaryService(dead)
	extraction := NewExtractionService(dead, convs, nil)
	recommendations := NewRecommendationService(dead, convs)
	svc := NewRFPService(dead, convs, summaries, extraction)

	created := svc.CreateConversation()

	_, err := svc.Reply(context.Background(), created.ConversationID, "hello")
	require.Error(t, err)

	resp, err := extraction.Extract(context.Background(), created.ConversationID)
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.NotEmpty(t, resp.Metadata.Error)

	assert.Empty(t, recommendations.Recommend(context.Background(), created.ConversationID))
}
