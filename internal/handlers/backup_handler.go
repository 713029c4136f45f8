package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/San7122/shopsmart-pro-sub001/internal/backup"
	"github.com/San7122/shopsmart-pro-sub001/internal/middleware"
)

type BackupHandler struct {
	Service *backup.Service
}

func NewBackupHandler(s *backup.Service) *BackupHandler {
	return &BackupHandler{Service: s}
}

func (h *BackupHandler) TriggerBackup(w http.ResponseWriter, r *http.Request) {
	if !h.Service.Enabled() {
		http.Error(w, "Backups are not configured", http.StatusServiceUnavailable)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())

	key, err := h.Service.ExportShop(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"key": key})
}

func (h *BackupHandler) ListBackups(w http.ResponseWriter, r *http.Request) {
	if !h.Service.Enabled() {
		http.Error(w, "Backups are not configured", http.StatusServiceUnavailable)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())

	keys, err := h.Service.ListBackups(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{"backups": keys})
}
