package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"mindcare/internal/validation"
)

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("failed to encode response: %v", err)
		}
	}
}

// respondError writes a JSON error response. When err is non-nil it is
// logged with logMsg for context; the client only ever sees userMsg.
func respondError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, map[string]string{"error": userMsg})
}

// respondValidationError writes a 400 carrying the rejected field
func respondValidationError(w http.ResponseWriter, verr *validation.ValidationError) {
	respondJSON(w, http.StatusBadRequest, map[string]string{
		"error": verr.Message,
		"field": verr.Field,
	})
}
