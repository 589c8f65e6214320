package handlers

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	OK bool  `json:"ok"`
	TS int64 `json:"ts"`
}

// Health reports liveness only; it never touches an upstream.
func Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, r, HealthResponse{OK: true, TS: time.Now().UnixMilli()})
}
