package http

import (
	"encoding/json"
	"net/http"

	"fintrack/domain"
	"fintrack/service"
)

type DebtHandler struct {
	service *service.DebtService
}

func NewDebtHandler(service *service.DebtService) *DebtHandler {
	return &DebtHandler{service: service}
}

func (h *DebtHandler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.CreateDebtInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	debt, err := h.service.CreateDebt(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, debt)
}

func (h *DebtHandler) ListDebts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := queryID(r, "user_id")
	if !ok {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}

	list, err := h.service.GetDebts(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, list)
}

func (h *DebtHandler) GetDebt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	debtID, ok := queryID(r, "debt_id")
	if !ok {
		http.Error(w, "invalid debt_id", http.StatusBadRequest)
		return
	}

	view, err := h.service.GetDebt(r.Context(), debtID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, view)
}

func (h *DebtHandler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.CompletePaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	debt, err := h.service.CompletePayment(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, debt)
}

func (h *DebtHandler) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	debtID, ok := queryID(r, "debt_id")
	if !ok {
		http.Error(w, "invalid debt_id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteDebt(r.Context(), debtID); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, nil)
}
