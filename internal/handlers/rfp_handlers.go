package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/barenakeddev/intelliplan-sub000/internal/conversation"
	"github.com/barenakeddev/intelliplan-sub000/internal/llm"
	"github.com/barenakeddev/intelliplan-sub000/internal/models"
	"github.com/barenakeddev/intelliplan-sub000/internal/services"
	"github.com/barenakeddev/intelliplan-sub000/internal/store"
	"github.com/barenakeddev/intelliplan-sub000/pkg/httputil"
)

// RFPHandlers exposes the conversational RFP drafting surface: conversation
// lifecycle, message exchange, extraction, recommendations and final document
// generation, plus reads of the persisted artifacts.
type RFPHandlers struct {
	rfpService      *services.RFPService
	extractionSvc   *services.ExtractionService
	recommendations *services.RecommendationService
	documentSvc     *services.DocumentService
	store           store.Store // may be nil; persisted-artifact reads then 404
}

func NewRFPHandlers(rfp *services.RFPService, extraction *services.ExtractionService, recs *services.RecommendationService, docs *services.DocumentService, st store.Store) *RFPHandlers {
	return &RFPHandlers{
		rfpService:      rfp,
		extractionSvc:   extraction,
		recommendations: recs,
		documentSvc:     docs,
		store:           st,
	}
}

// HandleCreateConversation handles POST /rfp/conversation. No body required;
// the response carries the new conversation id and the fixed greeting.
func (h *RFPHandlers) HandleCreateConversation(w http.ResponseWriter, r *http.Request) {
	resp := h.rfpService.CreateConversation()
	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleSendMessage handles POST /rfp/message: one user turn in, one
// assistant turn out.
func (h *RFPHandlers) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.rfpService.Reply(r.Context(), req.ConversationID, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			httputil.RespondError(w, http.StatusBadRequest, "Message is required")
			return
		}
		respondGatewayError(w, req.ConversationID, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleGenerateRFP handles POST /rfp/generate: renders the final document
// for a conversation.
func (h *RFPHandlers) HandleGenerateRFP(w http.ResponseWriter, r *http.Request) {
	var req models.ConversationIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.ConversationID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "conversationId is required")
		return
	}

	payload, err := h.documentSvc.GenerateFinal(r.Context(), req.ConversationID)
	if err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Conversation not found")
			return
		}
		respondGatewayError(w, req.ConversationID, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.GenerateRFPResponse{
		ConversationID: req.ConversationID,
		RFP:            *payload,
	})
}

// HandleExtract handles POST /rfp/extract: an on-demand extraction pass over
// the conversation. A failed model call still yields 200 with empty data;
// only an unknown conversation is an error.
func (h *RFPHandlers) HandleExtract(w http.ResponseWriter, r *http.Request) {
	var req models.ConversationIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.ConversationID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "conversationId is required")
		return
	}

	resp, err := h.extractionSvc.Extract(r.Context(), req.ConversationID)
	if err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Conversation not found")
			return
		}
		log.Printf("ERROR: Extract handler failed for conversation %s: %v", req.ConversationID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Extraction failed due to an internal error")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleGetRecommendations handles GET /rfp/recommendations/{conversationID}.
// Always 200; an empty list means nothing to suggest (or nothing known yet).
func (h *RFPHandlers) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	if conversationID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "conversationID is required")
		return
	}

	questions := h.recommendations.Recommend(r.Context(), conversationID)
	httputil.RespondJSON(w, http.StatusOK, models.RecommendationsResponse{
		ConversationID:  conversationID,
		Recommendations: questions,
	})
}

// HandleGetRFPDocument handles GET /rfp/document/{conversationID}: the most
// recently persisted generated document, so a reloaded frontend can show the
// last draft without regenerating it.
func (h *RFPHandlers) HandleGetRFPDocument(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	if conversationID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "conversationID is required")
		return
	}
	if h.store == nil {
		httputil.RespondError(w, http.StatusNotFound, "No persisted documents available")
		return
	}

	doc, err := h.store.GetRFPDocumentByConversation(r.Context(), conversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "No document generated for this conversation")
			return
		}
		log.Printf("ERROR: GetRFPDocument failed for conversation %s: %v", conversationID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to load document")
		return
	}

	var data map[string]interface{}
	if err := json.Unmarshal(doc.Data, &data); err != nil {
		data = map[string]interface{}{}
	}
	httputil.RespondJSON(w, http.StatusOK, models.GenerateRFPResponse{
		ConversationID: conversationID,
		RFP:            models.RFPPayload{Text: doc.Text, Data: data},
	})
}

// HandleGetExtractionSnapshot handles GET /rfp/extraction/{conversationID}:
// the persisted extraction state, without running a new extraction pass.
func (h *RFPHandlers) HandleGetExtractionSnapshot(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	if conversationID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "conversationID is required")
		return
	}
	if h.store == nil {
		httputil.RespondError(w, http.StatusNotFound, "No persisted extraction state available")
		return
	}

	snap, err := h.store.GetExtractionSnapshot(r.Context(), conversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "No extraction state for this conversation")
			return
		}
		log.Printf("ERROR: GetExtractionSnapshot failed for conversation %s: %v", conversationID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to load extraction state")
		return
	}

	var fields map[string]models.ExtractionField
	if err := json.Unmarshal(snap.Fields, &fields); err != nil {
		fields = map[string]models.ExtractionField{}
	}
	httputil.RespondJSON(w, http.StatusOK, models.ExtractResponse{
		ConversationID: conversationID,
		Data:           models.ConfidentFields(fields),
		Metadata: models.ExtractionMetadata{
			ExtractedAt: snap.UpdatedAt,
			Confidence:  fields,
		},
	})
}

// respondGatewayError maps completion-gateway failures onto HTTP statuses.
// Credential problems get a distinct message so operators can tell a
// misconfigured API key from a transient outage.
func respondGatewayError(w http.ResponseWriter, conversationID string, err error) {
	log.Printf("ERROR: RFP handler gateway failure for conversation %q: %v", conversationID, err)
	switch {
	case errors.Is(err, llm.ErrAuthentication):
		httputil.RespondError(w, http.StatusBadGateway, "Completion service rejected our credentials")
	case errors.Is(err, llm.ErrUnavailable), errors.Is(err, llm.ErrEmptyCompletion):
		httputil.RespondError(w, http.StatusBadGateway, "Completion service is unavailable, please retry")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to generate a response")
	}
}
