package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"fintrack/domain"
	"fintrack/service"
)

type AccountHandler struct {
	balances *service.BalanceService
}

func NewAccountHandler(balances *service.BalanceService) *AccountHandler {
	return &AccountHandler{balances: balances}
}

func (h *AccountHandler) Bank(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var bank domain.Bank
		if err := json.NewDecoder(r.Body).Decode(&bank); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		created, err := h.balances.AddBank(r.Context(), bank)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, created)

	case http.MethodDelete:
		bankID, ok := queryID(r, "bank_id")
		if !ok {
			http.Error(w, "invalid bank_id", http.StatusBadRequest)
			return
		}

		if err := h.balances.DeleteBank(r.Context(), bankID); err != nil {
			writeError(w, err)
			return
		}
		writeData(w, nil)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AccountHandler) Banks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := queryID(r, "user_id")
	if !ok {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}

	banks, err := h.balances.Banks(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, banks)
}

type setBalanceRequest struct {
	UserID  int64           `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

func (h *AccountHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	h.setBalance(w, r, h.balances.SetWallet)
}

func (h *AccountHandler) Ewallet(w http.ResponseWriter, r *http.Request) {
	h.setBalance(w, r, h.balances.SetEwallet)
}

func (h *AccountHandler) setBalance(w http.ResponseWriter, r *http.Request,
	set func(ctx context.Context, userID int64, balance decimal.Decimal) error,
) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req setBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := set(r.Context(), req.UserID, req.Balance); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, nil)
}

func (h *AccountHandler) TotalBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := queryID(r, "user_id")
	if !ok {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}

	summary, err := h.balances.TotalBalance(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, summary)
}

func (h *AccountHandler) BankShare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := queryID(r, "user_id")
	if !ok {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}
	bankID, err := strconv.ParseInt(r.URL.Query().Get("bank_id"), 10, 64)
	if err != nil || bankID <= 0 {
		http.Error(w, "invalid bank_id", http.StatusBadRequest)
		return
	}

	share, err := h.balances.BankShare(r.Context(), userID, bankID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, share)
}
