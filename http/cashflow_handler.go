package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"fintrack/domain"
	"fintrack/service"
)

type CashflowHandler struct {
	service *service.CashflowService
}

func NewCashflowHandler(service *service.CashflowService) *CashflowHandler {
	return &CashflowHandler{service: service}
}

func (h *CashflowHandler) Record(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var entry domain.CashflowEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	recorded, err := h.service.Record(r.Context(), entry)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, recorded)
}

func (h *CashflowHandler) Today(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := queryID(r, "user_id")
	if !ok {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}

	totals, err := h.service.DayTotals(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, totals)
}

func (h *CashflowHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := queryID(r, "user_id")
	if !ok {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}
	kind := domain.EntryKind(r.URL.Query().Get("kind"))

	series, err := h.service.WeeklySeries(r.Context(), userID, kind)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, series)
}

func (h *CashflowHandler) Entries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := queryID(r, "user_id")
	if !ok {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}
	accountKind := domain.AccountKind(r.URL.Query().Get("account_kind"))
	kind := domain.EntryKind(r.URL.Query().Get("kind"))

	var accountID int64
	if raw := r.URL.Query().Get("account_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid account_id", http.StatusBadRequest)
			return
		}
		accountID = id
	}

	entries, err := h.service.Entries(r.Context(), userID, accountKind, accountID, kind)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, entries)
}

func (h *CashflowHandler) CategoryRatio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := queryID(r, "user_id")
	if !ok {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}
	kind := domain.EntryKind(r.URL.Query().Get("kind"))

	ratio, err := h.service.WeeklyCategoryRatio(r.Context(), userID, kind)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, ratio)
}

func (h *CashflowHandler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := queryID(r, "user_id")
	if !ok {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year <= 0 {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	summary, err := h.service.MonthlySummary(r.Context(), userID, year, time.Month(month))
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, summary)
}
