package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"vibeform/internal/model"
	"vibeform/internal/service"
	"vibeform/internal/transport/rest/middleware"
)

// ResponseHandler handles response endpoints
type ResponseHandler struct {
	responseSvc *service.ResponseService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseSvc: responseSvc}
}

// Submit handles POST /v1/responses/{formId}
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.ResponsePayload
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.responseSvc.Submit(r.Context(), mux.Vars(r)["formId"], req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /v1/forms/{formId}/responses
func (h *ResponseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	responses, err := h.responseSvc.List(r.Context(), userID, mux.Vars(r)["formId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, responses)
}

// Delete handles DELETE /v1/forms/{formId}/responses/{responseId}
func (h *ResponseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	vars := mux.Vars(r)
	if err := h.responseSvc.Delete(r.Context(), userID, vars["formId"], vars["responseId"]); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "response deleted"})
}
