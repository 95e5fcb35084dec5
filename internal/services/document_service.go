package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/barenakeddev/intelliplan-sub000/internal/conversation"
	"github.com/barenakeddev/intelliplan-sub000/internal/integrations"
	"github.com/barenakeddev/intelliplan-sub000/internal/llm"
	"github.com/barenakeddev/intelliplan-sub000/internal/models"
	"github.com/barenakeddev/intelliplan-sub000/internal/store"
)

// DocumentService produces the final formatted RFP document for a
// conversation. Unlike extraction and recommendations, a failed document
// request is propagated: the planner asked for the document explicitly and
// must see the failure rather than silently empty output.
type DocumentService struct {
	llm           llm.Client
	conversations *conversation.Store
	extraction    *ExtractionService
	store         store.Store            // may be nil; documents are then not persisted
	delivery      *integrations.Registry // may be nil; no outbound delivery
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(client llm.Client, conversations *conversation.Store, extraction *ExtractionService, st store.Store, delivery *integrations.Registry) *DocumentService {
	return &DocumentService{
		llm:           client,
		conversations: conversations,
		extraction:    extraction,
		store:         st,
		delivery:      delivery,
	}
}

// GenerateFinal renders the final RFP document from the conversation's
// history, returning the generated text alongside the structured data
// snapshot it was generated from. Returns conversation.ErrNotFound for an
// unknown id and propagates gateway failures.
func (s *DocumentService) GenerateFinal(ctx context.Context, conversationID string) (*models.RFPPayload, error) {
	conv, err := s.conversations.Get(conversationID)
	if err != nil {
		return nil, err
	}

	// Make sure structured data exists before generating. A failed
	// refresh is tolerable; the document still renders from raw history.
	if conv.Extraction() == nil {
		if err := s.extraction.Update(ctx, conv); err != nil {
			log.Printf("WARN [DocumentService] pre-generation extraction failed for conversation %s: %v", conversationID, err)
		}
	}

	history := conv.History()
	messages := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: finalDocumentInstruction})

	text, err := s.llm.Complete(ctx, llm.CompletionRequest{
		Messages:    messages,
		Temperature: 0.5,
		MaxTokens:   3000,
	})
	if err != nil {
		return nil, fmt.Errorf("generating RFP document: %w", err)
	}

	data := confidentData(conv.Extraction())
	payload := &models.RFPPayload{Text: text, Data: data}

	s.persistAndDeliver(ctx, conversationID, payload)

	return payload, nil
}

// persistAndDeliver stores the generated document and hands it to the
// configured delivery targets. Both are best-effort: the planner already has
// the document in hand.
func (s *DocumentService) persistAndDeliver(ctx context.Context, conversationID string, payload *models.RFPPayload) {
	dataJSON, err := json.Marshal(payload.Data)
	if err != nil {
		log.Printf("WARN [DocumentService] could not marshal structured data for conversation %s: %v", conversationID, err)
		dataJSON = []byte("{}")
	}

	doc := &models.RFPDocument{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Text:           payload.Text,
		Data:           dataJSON,
	}

	if s.store != nil {
		if err := s.store.SaveRFPDocument(ctx, doc); err != nil {
			log.Printf("WARN [DocumentService] could not persist RFP document for conversation %s: %v", conversationID, err)
		}
	}

	if s.delivery != nil {
		s.delivery.Deliver(ctx, doc)
	}
}
