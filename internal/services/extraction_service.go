package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/barenakeddev/intelliplan-sub000/internal/conversation"
	"github.com/barenakeddev/intelliplan-sub000/internal/llm"
	"github.com/barenakeddev/intelliplan-sub000/internal/models"
	"github.com/barenakeddev/intelliplan-sub000/internal/store"
)

// ExtractionService turns free-form dialogue into the fixed RFP field schema
// with per-field confidence scores. It is a best-effort subsystem: model
// failures surface as an empty result with an error note in the metadata,
// never as an error to the caller.
type ExtractionService struct {
	llm           llm.Client
	conversations *conversation.Store
	store         store.Store // may be nil; snapshots are then skipped

	// mergeMu serializes read-modify-write of a conversation's field
	// store, since the async post-reply trigger can overlap a direct
	// extract call.
	mergeMu sync.Mutex
}

// NewExtractionService creates a new ExtractionService. st may be nil when no
// persistence is configured.
func NewExtractionService(client llm.Client, conversations *conversation.Store, st store.Store) *ExtractionService {
	return &ExtractionService{
		llm:           client,
		conversations: conversations,
		store:         st,
	}
}

// rawField is the per-field shape the extraction prompt demands.
type rawField struct {
	Value      interface{} `json:"value"`
	Confidence *float64    `json:"confidence"`
}

// Extract runs an extraction pass over the conversation's current history,
// merges the result into the accumulated field store, and returns the
// confident subset. The only possible error is conversation.ErrNotFound;
// every internal failure degrades to an empty result.
func (s *ExtractionService) Extract(ctx context.Context, conversationID string) (*models.ExtractResponse, error) {
	conv, err := s.conversations.Get(conversationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result, extractErr := s.runAndMerge(ctx, conv, now)
	if extractErr != nil {
		log.Printf("WARN [ExtractionService] extraction failed for conversation %s: %v", conversationID, extractErr)
		return &models.ExtractResponse{
			ConversationID: conversationID,
			Data:           map[string]interface{}{},
			Metadata: models.ExtractionMetadata{
				ExtractedAt: now,
				Error:       extractErr.Error(),
			},
		}, nil
	}

	return &models.ExtractResponse{
		ConversationID: conversationID,
		Data:           confidentData(result),
		Metadata: models.ExtractionMetadata{
			ExtractedAt: now,
			Confidence:  result.Fields,
		},
	}, nil
}

// Update refreshes the conversation's accumulated field store without
// building a response. Used by document generation to make sure structured
// data exists before the final document is produced.
func (s *ExtractionService) Update(ctx context.Context, conv *conversation.Conversation) error {
	_, err := s.runAndMerge(ctx, conv, time.Now())
	return err
}

func (s *ExtractionService) runAndMerge(ctx context.Context, conv *conversation.Conversation, now time.Time) (*models.ExtractionResult, error) {
	// History() hands back a copy; the live transcript is never touched.
	history := conv.History()

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: extractionSystemPrompt})
	for _, m := range history {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: extractionUserInstruction})

	raw, err := s.llm.Complete(ctx, llm.CompletionRequest{
		Messages:    messages,
		Temperature: 0.1,
		MaxTokens:   1500,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	parsed, err := llm.ExtractObject[map[string]json.RawMessage](raw)
	if err != nil {
		// Defensive default: malformed output counts as "nothing
		// extracted", not a crash.
		parsed = map[string]json.RawMessage{}
	}

	s.mergeMu.Lock()
	defer s.mergeMu.Unlock()

	result := conv.Extraction()
	if result == nil {
		result = &models.ExtractionResult{
			ConversationID: conv.ID,
			Fields:         make(map[string]models.ExtractionField),
		}
	}

	for name, body := range parsed {
		var f rawField
		if err := json.Unmarshal(body, &f); err != nil {
			// A key without the {value, confidence} shape never
			// blocks the rest of the merge.
			continue
		}
		if f.Confidence == nil {
			continue
		}
		// The stored entry is replaced whenever the model returns the
		// field, whether confidence rose or fell. Out-of-range
		// confidences pass through unchanged.
		result.Fields[name] = models.ExtractionField{
			Value:       f.Value,
			Confidence:  *f.Confidence,
			ExtractedAt: now,
		}
	}
	result.LastUpdated = now
	conv.SetExtraction(result)

	s.persistSnapshot(ctx, result)

	return result, nil
}

// persistSnapshot writes the accumulated state to the database, best-effort.
func (s *ExtractionService) persistSnapshot(ctx context.Context, result *models.ExtractionResult) {
	if s.store == nil {
		return
	}
	fieldsJSON, err := json.Marshal(result.Fields)
	if err != nil {
		log.Printf("WARN [ExtractionService] could not marshal snapshot for conversation %s: %v", result.ConversationID, err)
		return
	}
	snap := &models.ExtractionSnapshot{
		ConversationID: result.ConversationID,
		Fields:         fieldsJSON,
	}
	if err := s.store.UpsertExtractionSnapshot(ctx, snap); err != nil {
		log.Printf("WARN [ExtractionService] could not persist snapshot for conversation %s: %v", result.ConversationID, err)
	}
}

// confidentData builds the externally visible field map for a result that
// may not exist yet.
func confidentData(result *models.ExtractionResult) map[string]interface{} {
	if result == nil {
		return map[string]interface{}{}
	}
	return models.ConfidentFields(result.Fields)
}
