package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/San7122/shopsmart-pro-sub001/internal/middleware"
	"github.com/San7122/shopsmart-pro-sub001/internal/models"
	"github.com/San7122/shopsmart-pro-sub001/internal/services"
)

type PaymentScheduleHandler struct {
	Service *services.PaymentScheduleService
}

func NewPaymentScheduleHandler(s *services.PaymentScheduleService) *PaymentScheduleHandler {
	return &PaymentScheduleHandler{Service: s}
}

func scheduleErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrScheduleCancelled):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func (h *PaymentScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.CreatePaymentScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	schedule, err := h.Service.CreateSchedule(r.Context(), userID, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(schedule)
}

func (h *PaymentScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	schedule, err := h.Service.GetSchedule(r.Context(), userID, id)
	if err != nil {
		http.Error(w, "Schedule not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedule)
}

func (h *PaymentScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if customerIDStr := r.URL.Query().Get("customer_id"); customerIDStr != "" {
		customerID, _ := strconv.Atoi(customerIDStr)
		schedules, err := h.Service.ListByCustomer(r.Context(), userID, customerID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(schedules)
		return
	}

	schedules, err := h.Service.ListSchedules(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedules)
}

func (h *PaymentScheduleHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	schedule, err := h.Service.RecordPayment(r.Context(), userID, id, &req)
	if err != nil {
		http.Error(w, err.Error(), scheduleErrorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedule)
}

func (h *PaymentScheduleHandler) ApplyLateFee(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	schedule, fee, err := h.Service.ApplyLateFee(r.Context(), userID, id)
	if err != nil {
		http.Error(w, err.Error(), scheduleErrorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"schedule":    schedule,
		"fee_applied": fee,
	})
}

func (h *PaymentScheduleHandler) PromiseToPay(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.PromiseToPayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	schedule, err := h.Service.PromiseToPay(r.Context(), userID, id, &req)
	if err != nil {
		http.Error(w, err.Error(), scheduleErrorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedule)
}

func (h *PaymentScheduleHandler) CancelSchedule(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	schedule, err := h.Service.CancelSchedule(r.Context(), userID, id)
	if err != nil {
		http.Error(w, err.Error(), scheduleErrorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedule)
}

func (h *PaymentScheduleHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	schedules, err := h.Service.GetUpcoming(r.Context(), userID, days)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedules)
}

func (h *PaymentScheduleHandler) GetOverdue(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	schedules, err := h.Service.GetOverdue(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedules)
}

func (h *PaymentScheduleHandler) GetDueToday(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	schedules, err := h.Service.GetDueToday(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedules)
}

func (h *PaymentScheduleHandler) RefreshStatuses(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	changed, err := h.Service.RefreshStatuses(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"updated": changed})
}
