package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every 4xx/5xx response
type ErrorResponse struct {
	Message string `json:"message"`
}

// RespondJSON writes v as JSON with the given status
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// RespondError writes an ErrorResponse
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Message: message})
}
