package service

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"fintrack/calendar"
	"fintrack/domain"
	"fintrack/repository"
)

// DebtService owns the debt amortization schedule: creation with catch-up
// accounting, advancing the schedule on completed payments, and payoff
// detection on reads.
type DebtService struct {
	repo     repository.DebtRepository
	clock    Clock
	notifier Notifier
}

func NewDebtService(repo repository.DebtRepository, clock Clock, notifier Notifier) *DebtService {
	return &DebtService{repo: repo, clock: clock, notifier: notifier}
}

// CreateDebt validates the input, computes the fixed schedule and persists
// the new debt.
//
// The first due date is the start date's day-of-month placed in the current
// month, clamped to the end of the month when that day does not exist, and
// advanced one month if it already passed. Installments notionally due
// between the nominal start date and now are credited up front, so a debt
// created mid-term starts with partial progress.
func (s *DebtService) CreateDebt(ctx context.Context, input domain.CreateDebtInput) (domain.Debt, error) {
	if input.UserID <= 0 {
		return domain.Debt{}, invalid("user_id", "must be positive")
	}
	if input.Name == "" {
		return domain.Debt{}, invalid("name", "must not be empty")
	}
	if len(input.Name) > MaxNameLength {
		return domain.Debt{}, invalid("name", fmt.Sprintf("must be at most %d characters", MaxNameLength))
	}
	if !input.InstallmentAmount.IsPositive() {
		return domain.Debt{}, invalid("installment_amount", "must be positive")
	}
	if input.TermYears <= 0 {
		return domain.Debt{}, invalid("term_years", "must be positive")
	}
	if input.TermYears > MaxTermYears {
		return domain.Debt{}, invalid("term_years", fmt.Sprintf("must be at most %d", MaxTermYears))
	}
	if input.StartDate.IsZero() {
		return domain.Debt{}, invalid("start_date", "must be set")
	}
	if input.NotifyToken == "" {
		return domain.Debt{}, invalid("notify_token", "must not be empty")
	}
	if input.NotifyEmail == "" {
		return domain.Debt{}, invalid("notify_email", "must not be empty")
	}

	now := s.clock.Now()
	loc := now.Location()

	start := calendar.Date(input.StartDate.Year(), input.StartDate.Month(), input.StartDate.Day(), loc)
	end := calendar.AddYears(start, input.TermYears)

	totalAmount := input.InstallmentAmount.Mul(decimal.NewFromInt(int64(input.TermYears) * 12))

	// First due date: same day-of-month as the start date, in the current
	// month, pushed one month out if it already passed.
	nextDue := calendar.Date(now.Year(), now.Month(), start.Day(), loc)
	if nextDue.Before(now) {
		nextDue = calendar.AddMonth(nextDue)
	}

	paidMonths := calendar.WholeMonthsSince(start, now)
	if paidMonths < 0 {
		paidMonths = 0
	}

	debt := domain.Debt{
		UserID:            input.UserID,
		Name:              input.Name,
		InstallmentAmount: input.InstallmentAmount,
		TotalAmount:       totalAmount,
		CumulativePaid:    input.InstallmentAmount.Mul(decimal.NewFromInt(int64(paidMonths))),
		StartDate:         start,
		NextDueDate:       nextDue,
		EndDate:           end,
		TermYears:         input.TermYears,
		MonthsRemaining:   calendar.MonthsBetween(nextDue, end),
		NotifyToken:       input.NotifyToken,
		NotifyEmail:       input.NotifyEmail,
	}

	id, err := s.repo.Create(ctx, debt)
	if err != nil {
		return domain.Debt{}, fmt.Errorf("create debt: %w", err)
	}
	debt.ID = id

	return debt, nil
}

// CompletePayment records one installment: credits the cumulative total,
// advances the next due date by one calendar month and recomputes the months
// remaining. Paying past the total obligation is allowed; the final payment
// may overshoot by one installment.
func (s *DebtService) CompletePayment(ctx context.Context, input domain.CompletePaymentInput) (domain.Debt, error) {
	debt, err := s.repo.GetByID(ctx, input.DebtID)
	if err != nil {
		return domain.Debt{}, fmt.Errorf("load debt %d: %w", input.DebtID, err)
	}
	if debt == nil || debt.UserID != input.UserID {
		return domain.Debt{}, fmt.Errorf("debt %d: %w", input.DebtID, ErrNotFound)
	}

	debt.CumulativePaid = debt.CumulativePaid.Add(debt.InstallmentAmount)
	debt.NextDueDate = calendar.AddMonth(debt.NextDueDate)
	debt.MonthsRemaining = calendar.MonthsBetween(debt.NextDueDate, debt.EndDate)

	if err := s.repo.Update(ctx, *debt); err != nil {
		return domain.Debt{}, fmt.Errorf("update debt %d: %w", debt.ID, err)
	}

	return *debt, nil
}

// DeleteDebt removes a debt record. No cascading effects.
func (s *DebtService) DeleteDebt(ctx context.Context, debtID int64) error {
	if debtID <= 0 {
		return invalid("debt_id", "must be positive")
	}

	debt, err := s.repo.GetByID(ctx, debtID)
	if err != nil {
		return fmt.Errorf("load debt %d: %w", debtID, err)
	}
	if debt == nil {
		return fmt.Errorf("debt %d: %w", debtID, ErrNotFound)
	}

	return s.repo.Delete(ctx, debtID)
}

// GetDebts lists a user's debts with the day distance to each next due date
// and the combined monthly installment burden.
func (s *DebtService) GetDebts(ctx context.Context, userID int64) (domain.DebtList, error) {
	if userID <= 0 {
		return domain.DebtList{}, invalid("user_id", "must be positive")
	}

	debts, err := s.repo.GetByOwner(ctx, userID)
	if err != nil {
		return domain.DebtList{}, fmt.Errorf("list debts for user %d: %w", userID, err)
	}
	if len(debts) == 0 {
		return domain.DebtList{}, fmt.Errorf("user %d has no debts: %w", userID, ErrNotFound)
	}

	now := s.clock.Now()
	list := domain.DebtList{
		Count:            len(debts),
		TotalInstallment: decimal.Zero,
	}
	for _, d := range debts {
		list.Debts = append(list.Debts, domain.DebtDetail{
			Debt:         d,
			DaysUntilDue: calendar.DaysUntil(now, d.NextDueDate),
		})
		list.TotalInstallment = list.TotalInstallment.Add(d.InstallmentAmount)
	}

	return list, nil
}

// GetDebt reads a single debt and evaluates the payoff predicate. Reading a
// paid-off debt sends the congratulation email; the predicate is derived, so
// every read of a paid-off debt sends again. Delivery failures are logged,
// never surfaced.
func (s *DebtService) GetDebt(ctx context.Context, debtID int64) (domain.DebtView, error) {
	if debtID <= 0 {
		return domain.DebtView{}, invalid("debt_id", "must be positive")
	}

	debt, err := s.repo.GetByID(ctx, debtID)
	if err != nil {
		return domain.DebtView{}, fmt.Errorf("load debt %d: %w", debtID, err)
	}
	if debt == nil {
		return domain.DebtView{}, fmt.Errorf("debt %d: %w", debtID, ErrNotFound)
	}

	view := domain.DebtView{Debt: *debt, PaidOff: debt.IsPaidOff()}
	if view.PaidOff {
		err := s.notifier.SendEmail(ctx, debt.NotifyEmail, "Debt Paid Off",
			"Congratulations!\nYour debt has been fully paid off.")
		if err != nil {
			log.Printf("Warning: failed to send payoff email for debt %d: %v", debt.ID, err)
		}
	}

	return view, nil
}
