package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/barenakeddev/intelliplan-sub000/internal/models"
	"github.com/barenakeddev/intelliplan-sub000/internal/store"
)

// SaveRFPDocument inserts a generated RFP document. Repeated generation for
// the same conversation keeps every version; consumers read the latest.
func (s *PostgresStore) SaveRFPDocument(ctx context.Context, doc *models.RFPDocument) error {
	query := `
		INSERT INTO rfp_documents (id, conversation_id, rfp_text, structured_data)
		VALUES ($1, $2, $3, $4)`

	_, err := s.db.Exec(ctx, query,
		doc.ID,
		doc.ConversationID,
		doc.Text,
		doc.Data, // JSONB
	)
	if err != nil {
		log.Printf("ERROR [PostgresStore] SaveRFPDocument: insert failed for conversation %s: %v", doc.ConversationID, err)
		return fmt.Errorf("database error saving RFP document: %w", err)
	}
	return nil
}

// GetRFPDocumentByConversation retrieves the most recent generated RFP for a
// conversation. Returns store.ErrNotFound if none has been generated yet.
func (s *PostgresStore) GetRFPDocumentByConversation(ctx context.Context, conversationID string) (*models.RFPDocument, error) {
	query := `
		SELECT id, conversation_id, rfp_text, structured_data, created_at
		FROM rfp_documents
		WHERE conversation_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	doc := &models.RFPDocument{}
	err := s.db.QueryRow(ctx, query, conversationID).Scan(
		&doc.ID,
		&doc.ConversationID,
		&doc.Text,
		&doc.Data,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("database error fetching RFP document: %w", err)
	}
	return doc, nil
}

// UpsertExtractionSnapshot writes the accumulated extraction state for a
// conversation, replacing any previous snapshot.
func (s *PostgresStore) UpsertExtractionSnapshot(ctx context.Context, snap *models.ExtractionSnapshot) error {
	query := `
		INSERT INTO extraction_snapshots (conversation_id, fields, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (conversation_id)
		DO UPDATE SET fields = EXCLUDED.fields, updated_at = NOW()`

	_, err := s.db.Exec(ctx, query, snap.ConversationID, snap.Fields)
	if err != nil {
		log.Printf("ERROR [PostgresStore] UpsertExtractionSnapshot: upsert failed for conversation %s: %v", snap.ConversationID, err)
		return fmt.Errorf("database error saving extraction snapshot: %w", err)
	}
	return nil
}

// GetExtractionSnapshot retrieves the persisted extraction state for a
// conversation. Returns store.ErrNotFound if extraction has never run.
func (s *PostgresStore) GetExtractionSnapshot(ctx context.Context, conversationID string) (*models.ExtractionSnapshot, error) {
	query := `
		SELECT conversation_id, fields, updated_at
		FROM extraction_snapshots
		WHERE conversation_id = $1`

	snap := &models.ExtractionSnapshot{}
	err := s.db.QueryRow(ctx, query, conversationID).Scan(
		&snap.ConversationID,
		&snap.Fields,
		&snap.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("database error fetching extraction snapshot: %w", err)
	}
	return snap, nil
}
