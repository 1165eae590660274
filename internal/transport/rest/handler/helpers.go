package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"vibeform/internal/model"
	"vibeform/internal/transport/apierr"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps a service error onto its status. Question shape
// errors also list every offending question.
func writeServiceError(w http.ResponseWriter, err error) {
	status, msg := apierr.Describe(err)

	var shapeErrs model.ShapeErrors
	if errors.As(err, &shapeErrs) {
		writeJSON(w, status, map[string]interface{}{"error": msg, "details": shapeErrs})
		return
	}
	writeError(w, status, msg)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
