// Package httpx provides JSON response helpers shared by console handlers.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ContentTypeJSON is the content type emitted by JSON responses.
const ContentTypeJSON = "application/json"

// ErrorBody is the envelope for every error emitted by the console.
type ErrorBody struct {
	Error any `json:"error"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// RawJSON sends an already encoded JSON document unchanged.
func RawJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(raw)
}

// Error sends {"error": detail} with the given status code.
func Error(w http.ResponseWriter, status int, detail any) {
	JSON(w, status, ErrorBody{Error: detail})
}
