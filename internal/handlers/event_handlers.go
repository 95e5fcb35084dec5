package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/barenakeddev/intelliplan-sub000/internal/auth"
	"github.com/barenakeddev/intelliplan-sub000/internal/models"
	"github.com/barenakeddev/intelliplan-sub000/internal/services"
	"github.com/barenakeddev/intelliplan-sub000/internal/store"
	"github.com/barenakeddev/intelliplan-sub000/pkg/httputil"
)

// EventHandlers exposes planner event CRUD, scoped to the authenticated
// organization.
type EventHandlers struct {
	eventService *services.EventService
}

func NewEventHandlers(svc *services.EventService) *EventHandlers {
	return &EventHandlers{eventService: svc}
}

// orgIDFromRequest pulls the organization id injected by the JWT middleware.
func orgIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	orgID, ok := auth.GetOrgIDFromContext(r.Context())
	if !ok {
		log.Println("ERROR: OrgID missing from context in authenticated route")
		httputil.RespondError(w, http.StatusInternalServerError, "Could not identify organization")
		return uuid.Nil, false
	}
	return orgID, true
}

// eventIDFromURL parses the {eventID} path parameter.
func eventIDFromURL(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "eventID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid event ID format")
		return uuid.Nil, false
	}
	return id, true
}

// HandleCreateEvent handles POST /v1/events.
func (h *EventHandlers) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgIDFromRequest(w, r)
	if !ok {
		return
	}

	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.eventService.CreateEvent(r.Context(), orgID, req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("ERROR: CreateEvent failed for org %s: %v", orgID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, resp)
}

// HandleListEvents handles GET /v1/events.
func (h *EventHandlers) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgIDFromRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.eventService.ListEvents(r.Context(), orgID)
	if err != nil {
		log.Printf("ERROR: ListEvents failed for org %s: %v", orgID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleGetEvent handles GET /v1/events/{eventID}.
func (h *EventHandlers) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgIDFromRequest(w, r)
	if !ok {
		return
	}
	eventID, ok := eventIDFromURL(w, r)
	if !ok {
		return
	}

	resp, err := h.eventService.GetEventByID(r.Context(), orgID, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Event not found")
			return
		}
		log.Printf("ERROR: GetEvent failed for event %s: %v", eventID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get event")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleUpdateEvent handles PATCH /v1/events/{eventID}.
func (h *EventHandlers) HandleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgIDFromRequest(w, r)
	if !ok {
		return
	}
	eventID, ok := eventIDFromURL(w, r)
	if !ok {
		return
	}

	var req models.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.eventService.UpdateEvent(r.Context(), orgID, eventID, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Event not found")
			return
		}
		log.Printf("ERROR: UpdateEvent failed for event %s: %v", eventID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleDeleteEvent handles DELETE /v1/events/{eventID}.
func (h *EventHandlers) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	orgID, ok := orgIDFromRequest(w, r)
	if !ok {
		return
	}
	eventID, ok := eventIDFromURL(w, r)
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(r.Context(), orgID, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Event not found")
			return
		}
		log.Printf("ERROR: DeleteEvent failed for event %s: %v", eventID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
