package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

type envelope struct {
	Data any `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Data: data})
}

// internalError logs the underlying error server-side and sends a sanitized
// 500 body. Datastore error text never reaches clients.
func internalError(w http.ResponseWriter, err error) {
	log.Printf("internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, "Internal server error.")
}
