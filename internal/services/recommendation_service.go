package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/barenakeddev/intelliplan-sub000/internal/conversation"
	"github.com/barenakeddev/intelliplan-sub000/internal/llm"
)

// RecommendationService suggests prioritized follow-up questions for RFP
// fields that are still missing or below the confidence threshold. Like
// extraction, it is best-effort: any failure yields an empty list.
type RecommendationService struct {
	llm           llm.Client
	conversations *conversation.Store
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(client llm.Client, conversations *conversation.Store) *RecommendationService {
	return &RecommendationService{llm: client, conversations: conversations}
}

// Recommend returns 3-5 follow-up questions for the conversation, or an
// empty slice when no extraction result exists yet or anything fails.
func (s *RecommendationService) Recommend(ctx context.Context, conversationID string) []string {
	conv, err := s.conversations.Get(conversationID)
	if err != nil {
		return []string{}
	}

	result := conv.Extraction()
	if result == nil || len(result.Fields) == 0 {
		return []string{}
	}

	collected, err := json.MarshalIndent(confidentData(result), "", "  ")
	if err != nil {
		return []string{}
	}

	// Higher temperature than extraction: these are creative suggestions,
	// not literal reads of the transcript.
	raw, err := s.llm.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: recommendationSystemPrompt},
			{Role: llm.RoleUser, Content: "Details collected so far:\n" + string(collected)},
		},
		Temperature: 0.9,
		MaxTokens:   600,
		JSONMode:    true,
	})
	if err != nil {
		log.Printf("WARN [RecommendationService] completion failed for conversation %s: %v", conversationID, err)
		return []string{}
	}

	parsed, err := llm.ExtractObject[struct {
		Questions []string `json:"questions"`
	}](raw)
	if err != nil {
		log.Printf("WARN [RecommendationService] unparseable response for conversation %s: %v", conversationID, err)
		return []string{}
	}
	if parsed.Questions == nil {
		return []string{}
	}
	return parsed.Questions
}
