package utils

import (
	"encoding/json"
	"net/http"
)

// RespondJSON écrit une réponse JSON avec le code HTTP donné.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// RespondError écrit une erreur JSON au format {"erreur": "..."}.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"erreur": message})
}
