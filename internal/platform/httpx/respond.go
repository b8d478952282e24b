// Package httpx provides JSON response helpers for the machine-facing
// endpoints.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Status is the body of the health endpoint.
type Status struct {
	Status string `json:"status"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Healthz reports that the process is serving.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, Status{Status: "ok"})
}
