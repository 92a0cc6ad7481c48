package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountKind string

const (
	AccountBank    AccountKind = "bank"
	AccountWallet  AccountKind = "wallet"
	AccountEwallet AccountKind = "ewallet"
)

type EntryKind string

const (
	EntryIncome EntryKind = "income"
	EntrySpend  EntryKind = "spend"
)

// CashflowEntry is a single income or spend record against one account.
type CashflowEntry struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	AccountKind AccountKind     `json:"account_kind"`
	AccountID   int64           `json:"account_id,omitempty"`
	Kind        EntryKind       `json:"kind"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
}

// DayTotals is one day's combined income and spending across all of a
// user's accounts.
type DayTotals struct {
	Date        time.Time       `json:"date"`
	IncomeTotal decimal.Decimal `json:"income_total"`
	SpendTotal  decimal.Decimal `json:"spend_total"`
}

// DailyTotal is one bucket of a day-by-day series for a single entry kind.
type DailyTotal struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// CategoryRatio reports which category dominated a user's entries of one
// kind over the past week, and by how much.
type CategoryRatio struct {
	MaxCategory string          `json:"max_category"`
	MaxAmount   decimal.Decimal `json:"max_amount"`
	Ratio       decimal.Decimal `json:"ratio"`
	Totals      []CategoryShare `json:"totals"`
}

// CategoryShare is one spend category's slice of a month's spending.
type CategoryShare struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// MonthlySummary is a user's income/spend breakdown for one month.
type MonthlySummary struct {
	Year        int             `json:"year"`
	Month       time.Month      `json:"month"`
	IncomeTotal decimal.Decimal `json:"income_total"`
	SpendTotal  decimal.Decimal `json:"spend_total"`
	Net         decimal.Decimal `json:"net"`
	Categories  []CategoryShare `json:"categories"`
}
