package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/barenakeddev/intelliplan-sub000/internal/models"
	"github.com/barenakeddev/intelliplan-sub000/internal/store"
)

// EventService handles planner event bookkeeping: the persisted records that
// link drafting conversations to their eventual RFPs.
type EventService struct {
	store store.Store
}

// NewEventService creates a new EventService.
func NewEventService(s store.Store) *EventService {
	return &EventService{store: s}
}

func mapEventToResponse(ev *models.Event) *models.EventResponse {
	return &models.EventResponse{
		ID:             ev.ID,
		OrganizationID: ev.OrganizationID,
		Name:           ev.Name,
		ConversationID: ev.ConversationID,
		Status:         ev.Status,
		CreatedAt:      ev.CreatedAt,
		UpdatedAt:      ev.UpdatedAt,
	}
}

// CreateEvent creates a new event for the organization.
func (s *EventService) CreateEvent(ctx context.Context, orgID uuid.UUID, req models.CreateEventRequest) (*models.EventResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: event name is required", ErrValidation)
	}

	params := store.CreateEventParams{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           req.Name,
		ConversationID: req.ConversationID,
		Status:         "DRAFTING",
	}

	ev, err := s.store.CreateEvent(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create event in store: %w", err)
	}
	return mapEventToResponse(ev), nil
}

// GetEventByID retrieves a specific event scoped to the organization.
func (s *EventService) GetEventByID(ctx context.Context, orgID, eventID uuid.UUID) (*models.EventResponse, error) {
	ev, err := s.store.GetEventByID(ctx, eventID, orgID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, err // Propagate not found error
		}
		return nil, fmt.Errorf("failed to get event from store: %w", err)
	}
	return mapEventToResponse(ev), nil
}

// ListEvents retrieves all events for an organization.
func (s *EventService) ListEvents(ctx context.Context, orgID uuid.UUID) (*models.ListEventsResponse, error) {
	evs, err := s.store.ListEventsByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events from store: %w", err)
	}

	responses := make([]models.EventResponse, 0, len(evs))
	for i := range evs {
		responses = append(responses, *mapEventToResponse(&evs[i]))
	}
	return &models.ListEventsResponse{Events: responses}, nil
}

// UpdateEvent applies a partial update to an event.
func (s *EventService) UpdateEvent(ctx context.Context, orgID, eventID uuid.UUID, req models.UpdateEventRequest) (*models.EventResponse, error) {
	params := store.UpdateEventParams{
		ID:             eventID,
		OrganizationID: orgID,
		Name:           req.Name,
		ConversationID: req.ConversationID,
		Status:         req.Status,
	}

	ev, err := s.store.UpdateEvent(ctx, params)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update event in store: %w", err)
	}
	return mapEventToResponse(ev), nil
}

// DeleteEvent removes an event.
func (s *EventService) DeleteEvent(ctx context.Context, orgID, eventID uuid.UUID) error {
	if err := s.store.DeleteEvent(ctx, eventID, orgID); err != nil {
		if err == store.ErrNotFound {
			return err
		}
		return fmt.Errorf("failed to delete event from store: %w", err)
	}
	return nil
}
