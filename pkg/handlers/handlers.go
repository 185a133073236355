// Package handlers writes the JSON response envelopes shared by every endpoint.
// Success bodies carry "ok": true next to their payload fields; failures carry
// "ok": false and a human-readable "error" or "message".
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RespondJSON writes data as JSON with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondOK writes {"ok": true} merged with fields.
func RespondOK(w http.ResponseWriter, fields map[string]any) {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["ok"] = true
	RespondJSON(w, http.StatusOK, body)
}

// RespondError logs err and writes {"ok": false, "error": err.Error()}.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logFailure(logger, status, err)
	RespondJSON(w, status, map[string]any{"ok": false, "error": err.Error()})
}

// RespondMessage logs err and writes {"ok": false, "message": err.Error()}.
func RespondMessage(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logFailure(logger, status, err)
	RespondJSON(w, status, map[string]any{"ok": false, "message": err.Error()})
}

func logFailure(logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "error", err, "status", status)
		return
	}
	logger.Warn("request rejected", "error", err, "status", status)
}
