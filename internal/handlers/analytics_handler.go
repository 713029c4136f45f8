package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/San7122/shopsmart-pro-sub001/internal/middleware"
	"github.com/San7122/shopsmart-pro-sub001/internal/services"
)

type AnalyticsHandler struct {
	Service   *services.AnalyticsService
	Reminders *services.ReminderService
}

func NewAnalyticsHandler(s *services.AnalyticsService, reminders *services.ReminderService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: s, Reminders: reminders}
}

func (h *AnalyticsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	dashboard, err := h.Service.GetDashboard(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dashboard)
}

// GetPendingReminders lists today's reminders with their click-to-chat links
func (h *AnalyticsHandler) GetPendingReminders(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	reminders, err := h.Reminders.PendingReminders(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reminders)
}

// GetReminderLink builds the reminder message and wa.me link for one schedule
func (h *AnalyticsHandler) GetReminderLink(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid schedule ID", http.StatusBadRequest)
		return
	}

	reminder, err := h.Reminders.ReminderLink(r.Context(), userID, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reminder)
}
