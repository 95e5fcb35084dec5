package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/barenakeddev/intelliplan-sub000/internal/models"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// CreateEventParams contains parameters for creating a planner event.
type CreateEventParams struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	ConversationID *string
	Status         string
}

// UpdateEventParams contains parameters for updating a planner event.
// Pointer fields allow partial updates.
type UpdateEventParams struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           *string
	ConversationID *string
	Status         *string
}

// Store defines the interface for database operations.
// This allows for mocking in tests and potential DB backend switching.
type Store interface {
	// User operations
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	// Organization operations
	CreateOrganization(ctx context.Context, org *models.Organization) error

	// Event operations
	CreateEvent(ctx context.Context, arg CreateEventParams) (*models.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID, orgID uuid.UUID) (*models.Event, error)
	ListEventsByOrg(ctx context.Context, orgID uuid.UUID) ([]models.Event, error)
	UpdateEvent(ctx context.Context, arg UpdateEventParams) (*models.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID, orgID uuid.UUID) error

	// RFP artifact operations. Keyed by conversation id: the drafting
	// pipeline produces these, planner events reference them.
	SaveRFPDocument(ctx context.Context, doc *models.RFPDocument) error
	GetRFPDocumentByConversation(ctx context.Context, conversationID string) (*models.RFPDocument, error)
	UpsertExtractionSnapshot(ctx context.Context, snap *models.ExtractionSnapshot) error
	GetExtractionSnapshot(ctx context.Context, conversationID string) (*models.ExtractionSnapshot, error)
}
