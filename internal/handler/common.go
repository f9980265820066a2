package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bradyhq/dealdesk/internal/model"
)

type ErrorResponse struct {
	BaseResponse
	Error   string    `json:"error"`
	Details *[]string `json:"details,omitempty"`
}

type BaseResponse struct {
	Ok bool `json:"ok"`
}

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	// Sets content type header
	w.Header().Set("Content-Type", "application/json")

	// Sets the HTTP status code
	w.WriteHeader(code)

	// Encodes the response
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// If encoding fails, logs the error and sends a plain text response
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// actorFrom pulls the authenticated user the auth middleware stored on the
// request context. Returns nil for unauthenticated requests.
func actorFrom(r *http.Request) *model.User {
	actor, _ := r.Context().Value(ActorKey).(*model.User)
	return actor
}

type contextKey string

// ActorKey is the context key under which the auth middleware stores the
// authenticated *model.User.
const ActorKey = contextKey("dealdesk_actor")
