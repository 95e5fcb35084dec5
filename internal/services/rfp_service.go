package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/barenakeddev/intelliplan-sub000/internal/conversation"
	"github.com/barenakeddev/intelliplan-sub000/internal/llm"
	"github.com/barenakeddev/intelliplan-sub000/internal/models"
)

// ErrEmptyMessage is returned when a reply is requested with no message text.
var ErrEmptyMessage = errors.New("message cannot be empty")

// minMessagesForExtraction is the message count below which the post-reply
// extraction trigger is skipped: system prompt + greeting + at least one real
// user/assistant exchange.
const minMessagesForExtraction = 4

// extractionTriggerTimeout bounds the background extraction spawned after
// each reply. It runs detached from the request context so a finished HTTP
// request does not cancel it.
const extractionTriggerTimeout = 90 * time.Second

// RFPService is the dialogue orchestrator: it owns conversation lifecycle,
// coordinates compaction and the assistant reply, and triggers best-effort
// extraction after each exchange.
type RFPService struct {
	llm           llm.Client
	conversations *conversation.Store
	summaries     *SummaryService
	extraction    *ExtractionService

	// replyLocks serializes concurrent Reply calls on the same
	// conversation id so interleaved appends cannot corrupt a transcript.
	replyLocks sync.Map // conversation id -> *sync.Mutex
}

// NewRFPService creates a new RFPService.
func NewRFPService(client llm.Client, conversations *conversation.Store, summaries *SummaryService, extraction *ExtractionService) *RFPService {
	return &RFPService{
		llm:           client,
		conversations: conversations,
		summaries:     summaries,
		extraction:    extraction,
	}
}

// CreateConversation starts a drafting session seeded with the system
// prompt and the fixed greeting. The first assistant turn is deterministic:
// no model call, instant response.
func (s *RFPService) CreateConversation() *models.ConversationResponse {
	conv := s.conversations.Create(
		conversation.Message{Role: llm.RoleSystem, Content: rfpSystemPrompt},
		conversation.Message{Role: llm.RoleAssistant, Content: initialGreeting},
	)
	log.Printf("[RFPService] created conversation %s", conv.ID)
	return &models.ConversationResponse{
		ConversationID: conv.ID,
		Message:        initialGreeting,
	}
}

// Reply appends the user's message, obtains the assistant's reply from the
// gateway, and returns it. An unknown (or empty) conversation id starts a
// fresh conversation on the fly so first-contact flows can skip the explicit
// create step. Gateway failures propagate; extraction failures never do.
func (s *RFPService) Reply(ctx context.Context, conversationID, userMessage string) (*models.ConversationResponse, error) {
	if userMessage == "" {
		return nil, ErrEmptyMessage
	}

	conv, err := s.conversations.Get(conversationID)
	if err != nil {
		conv = s.conversations.Create(
			conversation.Message{Role: llm.RoleSystem, Content: rfpSystemPrompt},
			conversation.Message{Role: llm.RoleAssistant, Content: initialGreeting},
		)
		log.Printf("[RFPService] auto-created conversation %s (requested id %q unknown)", conv.ID, conversationID)
	}

	unlock := s.lockConversation(conv.ID)
	defer unlock()

	conv.Append(llm.RoleUser, userMessage)

	s.summaries.CompactIfNeeded(ctx, conv)

	history := conv.History()
	messages := make([]llm.Message, 0, len(history))
	for _, m := range history {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	replyText, err := s.llm.Complete(ctx, llm.CompletionRequest{
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, fmt.Errorf("generating assistant reply: %w", err)
	}

	conv.Append(llm.RoleAssistant, replyText)

	if conv.Len() >= minMessagesForExtraction {
		s.triggerExtraction(conv.ID)
	}

	return &models.ConversationResponse{
		ConversationID: conv.ID,
		Message:        replyText,
	}, nil
}

// triggerExtraction spawns the post-reply extraction pass in the background
// with its own error boundary. Failures are logged and swallowed: extraction
// is a best-effort subsystem that must never break the conversational flow.
func (s *RFPService) triggerExtraction(conversationID string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("ERROR [RFPService] background extraction panicked for conversation %s: %v", conversationID, r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), extractionTriggerTimeout)
		defer cancel()

		if _, err := s.extraction.Extract(ctx, conversationID); err != nil {
			log.Printf("WARN [RFPService] background extraction failed for conversation %s: %v", conversationID, err)
		}
	}()
}

func (s *RFPService) lockConversation(id string) func() {
	muAny, _ := s.replyLocks.LoadOrStore(id, &sync.Mutex{})
	mu := muAny.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
