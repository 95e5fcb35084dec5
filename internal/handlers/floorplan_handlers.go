package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/barenakeddev/intelliplan-sub000/internal/floorplan"
	"github.com/barenakeddev/intelliplan-sub000/pkg/httputil"
)

// FloorplanHandler exposes the deterministic floor plan calculator.
type FloorplanHandler struct{}

func NewFloorplanHandler() *FloorplanHandler {
	return &FloorplanHandler{}
}

// HandleGenerateFloorplan handles POST /rfp/floorplan. Purely computational,
// no model call involved.
func (h *FloorplanHandler) HandleGenerateFloorplan(w http.ResponseWriter, r *http.Request) {
	var req floorplan.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	plan, err := floorplan.Generate(req)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, plan)
}
