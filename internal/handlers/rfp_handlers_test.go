package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barenakeddev/intelliplan-sub000/internal/conversation"
	"github.com/barenakeddev/intelliplan-sub000/internal/llm"
	"github.com/barenakeddev/intelliplan-sub000/internal/models"
	"github.com/barenakeddev/intelliplan-sub000/internal/services"
)

// scriptedClient routes completion requests by JSON mode so one stub can
// serve chat replies and extraction passes at once.
type scriptedClient struct {
	reply    string
	jsonBody string
	err      error
}

func (c *scriptedClient) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	if req.JSONMode {
		return c.jsonBody, nil
	}
	return c.reply, nil
}

func newTestRouter(client llm.Client) (*chi.Mux, *services.RFPService) {
	convs := conversation.NewStore()
	summaries := services.NewSummaryService(client)
	extraction := services.NewExtractionService(client, convs, nil)
	recommendations := services.NewRecommendationService(client, convs)
	documents := services.NewDocumentService(client, convs, extraction, nil, nil)
	rfpSvc := services.NewRFPService(client, convs, summaries, extraction)

	h := NewRFPHandlers(rfpSvc, extraction, recommendations, documents, nil)

	r := chi.NewRouter()
	r.Post("/rfp/conversation", h.HandleCreateConversation)
	r.Post("/rfp/message", h.HandleSendMessage)
	r.Post("/rfp/generate", h.HandleGenerateRFP)
	r.Post("/rfp/extract", h.HandleExtract)
	r.Get("/rfp/recommendations/{conversationID}", h.HandleGetRecommendations)
	r.Get("/rfp/document/{conversationID}", h.HandleGetRFPDocument)
	r.Get("/rfp/extraction/{conversationID}", h.HandleGetExtractionSnapshot)
	return r, rfpSvc
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateConversationEndpoint(t *testing.T) {
	router, _ := newTestRouter(&scriptedClient{reply: "hi", jsonBody: "{}"})

	rec := doJSON(t, router, http.MethodPost, "/rfp/conversation", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ConversationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ConversationID)
	assert.NotEmpty(t, resp.Message)
}

func TestSendMessageEndpoint(t *testing.T) {
	router, _ := newTestRouter(&scriptedClient{reply: "What date works for you?", jsonBody: "{}"})

	rec := doJSON(t, router, http.MethodPost, "/rfp/message", `{"conversationId": "", "message": "Planning a 200-person gala."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ConversationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ConversationID)
	assert.Equal(t, "What date works for you?", resp.Message)
}

func TestSendMessageEmptyBody(t *testing.T) {
	router, _ := newTestRouter(&scriptedClient{reply: "hi", jsonBody: "{}"})

	rec := doJSON(t, router, http.MethodPost, "/rfp/message", `{"conversationId": "x", "message": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendMessageGatewayDown(t *testing.T) {
	router, _ := newTestRouter(&scriptedClient{err: llm.ErrUnavailable})

	rec := doJSON(t, router, http.MethodPost, "/rfp/message", `{"conversationId": "", "message": "hello"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSendMessageBadCredentials(t *testing.T) {
	router, _ := newTestRouter(&scriptedClient{err: llm.ErrAuthentication})

	rec := doJSON(t, router, http.MethodPost, "/rfp/message", `{"conversationId": "", "message": "hello"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "credentials")
}

func TestGenerateUnknownConversation(t *testing.T) {
	router, _ := newTestRouter(&scriptedClient{reply: "doc", jsonBody: "{}"})

	rec := doJSON(t, router, http.MethodPost, "/rfp/generate", `{"conversationId": "no-such-id"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExtractEndpointSurvivesGatewayFailure(t *testing.T) {
	client := &scriptedClient{reply: "ok", jsonBody: "{}"}
	router, rfpSvc := newTestRouter(client)

	created := rfpSvc.CreateConversation()

	client.err = llm.ErrUnavailable
	rec := doJSON(t, router, http.MethodPost, "/rfp/extract", `{"conversationId": "`+created.ConversationID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ExtractResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
	assert.NotEmpty(t, resp.Metadata.Error)
}

func TestPersistedReadsWithoutStore(t *testing.T) {
	router, _ := newTestRouter(&scriptedClient{reply: "ok", jsonBody: "{}"})

	rec := doJSON(t, router, http.MethodGet, "/rfp/document/some-id", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/rfp/extraction/some-id", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecommendationsEndpointAlwaysOK(t *testing.T) {
	router, _ := newTestRouter(&scriptedClient{reply: "ok", jsonBody: "{}"})

	rec := doJSON(t, router, http.MethodGet, "/rfp/recommendations/no-such-id", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RecommendationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Recommendations)
}
