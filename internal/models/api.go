package models

import (
	"time"

	"github.com/google/uuid"
)

// --- Auth Request Structs ---

// SignupRequest defines the expected body for the signup endpoint.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest defines the expected body for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Auth Response Structs ---

// UserResponse defines the user information returned by the API.
// Avoid returning sensitive info like HashedPassword.
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	OrganizationID uuid.UUID `json:"organization_id"`
}

// AuthResponse defines the response body for successful authentication.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// --- RFP Conversation DTOs ---

// SendMessageRequest defines the body for posting a user message into an RFP
// drafting conversation. ConversationID may reference a conversation that no
// longer exists (or never existed); the orchestrator creates one on the fly.
type SendMessageRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
}

// ConversationResponse is returned by both conversation creation and message
// exchange: the conversation id plus the assistant's reply text.
type ConversationResponse struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
}

// ConversationIDRequest carries just a conversation reference, used by the
// generate and extract endpoints.
type ConversationIDRequest struct {
	ConversationID string `json:"conversationId"`
}

// RFPPayload is the generated document plus the structured data snapshot it
// was generated from.
type RFPPayload struct {
	Text string                 `json:"text"`
	Data map[string]interface{} `json:"data"`
}

// GenerateRFPResponse is returned by the final-document endpoint.
type GenerateRFPResponse struct {
	ConversationID string     `json:"conversationId"`
	RFP            RFPPayload `json:"rfp"`
}

// ExtractionMetadata accompanies every extraction result. Confidence holds
// the full per-field store including entries below the exposure threshold.
// Error is set (and Data left empty) when the extraction run failed; callers
// must treat that as "nothing confidently known yet", not as a crash.
type ExtractionMetadata struct {
	ExtractedAt time.Time                  `json:"extractedAt"`
	Confidence  map[string]ExtractionField `json:"confidence,omitempty"`
	Error       string                     `json:"error,omitempty"`
}

// ExtractResponse is returned by the extract endpoint. Data contains only
// fields at or above the confidence threshold.
type ExtractResponse struct {
	ConversationID string                 `json:"conversationId"`
	Data           map[string]interface{} `json:"data"`
	Metadata       ExtractionMetadata     `json:"metadata"`
}

// RecommendationsResponse is returned by the recommendations endpoint.
type RecommendationsResponse struct {
	ConversationID  string   `json:"conversationId"`
	Recommendations []string `json:"recommendations"`
}

// --- Event DTOs ---

// CreateEventRequest defines the body for creating a planner event.
type CreateEventRequest struct {
	Name           string  `json:"name"`
	ConversationID *string `json:"conversation_id,omitempty"`
}

// UpdateEventRequest defines the body for updating a planner event.
type UpdateEventRequest struct {
	Name           *string `json:"name,omitempty"`
	ConversationID *string `json:"conversation_id,omitempty"`
	Status         *string `json:"status,omitempty"`
}

// EventResponse defines the data returned for a planner event.
type EventResponse struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	ConversationID *string   `json:"conversation_id,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ListEventsResponse wraps a list of events.
type ListEventsResponse struct {
	Events []EventResponse `json:"events"`
}
