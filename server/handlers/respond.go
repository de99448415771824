package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"propalyze/logger"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Error encoding response", logger.Err(err))
	}
}

func setHTML(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}
