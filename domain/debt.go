package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt is a fixed-amount, fixed-term monthly payment obligation.
type Debt struct {
	ID                int64           `json:"id"`
	UserID            int64           `json:"user_id"`
	Name              string          `json:"name"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	CumulativePaid    decimal.Decimal `json:"cumulative_paid"`
	StartDate         time.Time       `json:"start_date"`
	NextDueDate       time.Time       `json:"next_due_date"`
	EndDate           time.Time       `json:"end_date"`
	TermYears         int             `json:"term_years"`
	MonthsRemaining   int             `json:"months_remaining"`
	NotifyToken       string          `json:"notify_token"`
	NotifyEmail       string          `json:"notify_email"`
}

// IsPaidOff reports whether cumulative payments meet or exceed the total
// obligation. Derived on every read; no paid flag is stored.
func (d Debt) IsPaidOff() bool {
	return d.CumulativePaid.GreaterThanOrEqual(d.TotalAmount)
}

type CreateDebtInput struct {
	UserID            int64           `json:"user_id"`
	Name              string          `json:"name"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	StartDate         time.Time       `json:"start_date"`
	TermYears         int             `json:"term_years"`
	NotifyToken       string          `json:"notify_token"`
	NotifyEmail       string          `json:"notify_email"`
}

type CompletePaymentInput struct {
	DebtID int64 `json:"debt_id"`
	UserID int64 `json:"user_id"`
}

// DebtDetail is a Debt projected for display, with the day distance to the
// next due date. DaysUntilDue is negative for overdue installments.
type DebtDetail struct {
	Debt
	DaysUntilDue int `json:"days_until_due"`
}

type DebtList struct {
	Debts            []DebtDetail    `json:"debts"`
	Count            int             `json:"count"`
	TotalInstallment decimal.Decimal `json:"total_installment"`
}

// DebtView is a single-debt read with the payoff predicate evaluated.
type DebtView struct {
	Debt
	PaidOff bool `json:"paid_off"`
}
