package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents a planner account in the database.
type User struct {
	ID             uuid.UUID `db:"id"`
	OrganizationID uuid.UUID `db:"organization_id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Organization represents a planning workspace in the database.
type Organization struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Event represents a planned event owned by an organization. An event may be
// linked to the conversation that drafted its RFP.
type Event struct {
	ID             uuid.UUID `db:"id"`
	OrganizationID uuid.UUID `db:"organization_id"`
	Name           string    `db:"name"`
	ConversationID *string   `db:"conversation_id"` // Nullable until a draft session exists
	Status         string    `db:"status"`          // e.g., "DRAFTING", "RFP_READY"
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// RFPDocument is a persisted generated RFP alongside the structured data
// snapshot it was generated from.
type RFPDocument struct {
	ID             uuid.UUID       `db:"id"`
	ConversationID string          `db:"conversation_id"`
	Text           string          `db:"rfp_text"`
	Data           json.RawMessage `db:"structured_data"` // Stored as JSONB
	CreatedAt      time.Time       `db:"created_at"`
}

// ExtractionSnapshot is a persisted copy of a conversation's accumulated
// extraction state, written best-effort after each successful extraction run.
type ExtractionSnapshot struct {
	ConversationID string          `db:"conversation_id"`
	Fields         json.RawMessage `db:"fields"` // Stored as JSONB
	UpdatedAt      time.Time       `db:"updated_at"`
}
