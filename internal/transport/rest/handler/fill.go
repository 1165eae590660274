package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"vibeform/internal/model"
	"vibeform/internal/service"
)

// FillHandler drives fill sessions over plain HTTP
type FillHandler struct {
	fillSvc *service.FillService
}

// NewFillHandler creates a new fill handler
func NewFillHandler(fillSvc *service.FillService) *FillHandler {
	return &FillHandler{fillSvc: fillSvc}
}

// SetAnswerRequest is the body of PUT .../answers/{questionId}
type SetAnswerRequest struct {
	Answer model.Answer `json:"answer"`
}

// ToggleRequest is the body of POST .../answers/{questionId}/toggle
type ToggleRequest struct {
	Emoji string `json:"emoji"`
}

// Start handles POST /v1/fill/{formId}/sessions
func (h *FillHandler) Start(w http.ResponseWriter, r *http.Request) {
	snap, err := h.fillSvc.Start(r.Context(), mux.Vars(r)["formId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// Get handles GET /v1/fill/sessions/{sessionId}
func (h *FillHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respond(w)(h.fillSvc.Snapshot(r.Context(), mux.Vars(r)["sessionId"]))
}

// SetAnswer handles PUT /v1/fill/sessions/{sessionId}/answers/{questionId}
func (h *FillHandler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	var req SetAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	vars := mux.Vars(r)
	h.respond(w)(h.fillSvc.SetAnswer(r.Context(), vars["sessionId"], vars["questionId"], req.Answer))
}

// Toggle handles POST /v1/fill/sessions/{sessionId}/answers/{questionId}/toggle
func (h *FillHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	vars := mux.Vars(r)
	h.respond(w)(h.fillSvc.ToggleEmoji(r.Context(), vars["sessionId"], vars["questionId"], req.Emoji))
}

// Next handles POST /v1/fill/sessions/{sessionId}/next
func (h *FillHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.respond(w)(h.fillSvc.Next(r.Context(), mux.Vars(r)["sessionId"]))
}

// Back handles POST /v1/fill/sessions/{sessionId}/back
func (h *FillHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.respond(w)(h.fillSvc.Back(r.Context(), mux.Vars(r)["sessionId"]))
}

// Jump handles POST /v1/fill/sessions/{sessionId}/jump
func (h *FillHandler) Jump(w http.ResponseWriter, r *http.Request) {
	h.respond(w)(h.fillSvc.JumpToFirstMissingRequired(r.Context(), mux.Vars(r)["sessionId"]))
}

func (h *FillHandler) respond(w http.ResponseWriter) func(*model.FillSnapshot, error) {
	return func(snap *model.FillSnapshot, err error) {
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}
