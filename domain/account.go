package domain

import "github.com/shopspring/decimal"

// Bank is one of possibly many bank accounts held by a user.
type Bank struct {
	ID     int64           `json:"id"`
	UserID int64           `json:"user_id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Wallet is a user's single physical-cash balance.
type Wallet struct {
	UserID  int64           `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

// Ewallet is a user's single electronic-wallet balance.
type Ewallet struct {
	UserID  int64           `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

// BankBalance is a bank account with its share of the user's total bank
// holdings.
type BankBalance struct {
	Bank
	BalancePercentage decimal.Decimal `json:"balance_percentage"`
}

// BalanceSummary aggregates a user's holdings across all account kinds,
// with each kind's share of the combined total.
type BalanceSummary struct {
	TotalBalance      decimal.Decimal `json:"total_balance"`
	BankBalance       decimal.Decimal `json:"bank_balance"`
	WalletBalance     decimal.Decimal `json:"wallet_balance"`
	EwalletBalance    decimal.Decimal `json:"ewallet_balance"`
	BankPercentage    decimal.Decimal `json:"bank_percentage"`
	WalletPercentage  decimal.Decimal `json:"wallet_percentage"`
	EwalletPercentage decimal.Decimal `json:"ewallet_percentage"`
}

// BankShare extends the summary with one bank's share of the combined
// balance.
type BankShare struct {
	BalanceSummary
	BankID          int64           `json:"bank_id"`
	BankAmount      decimal.Decimal `json:"bank_amount"`
	SharePercentage decimal.Decimal `json:"share_percentage"`
}
