package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/domain"
	"fintrack/repository"
)

// CashflowService records income and spend entries against a user's
// accounts and answers monthly breakdown queries.
type CashflowService struct {
	entries  repository.CashflowRepository
	accounts repository.AccountRepository
	balances *BalanceService
	clock    Clock
}

func NewCashflowService(entries repository.CashflowRepository, accounts repository.AccountRepository,
	balances *BalanceService, clock Clock,
) *CashflowService {
	return &CashflowService{entries: entries, accounts: accounts, balances: balances, clock: clock}
}

// Record validates and persists one entry, then applies it to the target
// account balance: income adds, spend subtracts.
func (s *CashflowService) Record(ctx context.Context, entry domain.CashflowEntry) (domain.CashflowEntry, error) {
	if entry.UserID <= 0 {
		return domain.CashflowEntry{}, invalid("user_id", "must be positive")
	}
	switch entry.AccountKind {
	case domain.AccountBank, domain.AccountWallet, domain.AccountEwallet:
	default:
		return domain.CashflowEntry{}, invalid("account_kind", "must be bank, wallet or ewallet")
	}
	switch entry.Kind {
	case domain.EntryIncome, domain.EntrySpend:
	default:
		return domain.CashflowEntry{}, invalid("kind", "must be income or spend")
	}
	if entry.Category == "" {
		return domain.CashflowEntry{}, invalid("category", "must not be empty")
	}
	if !entry.Amount.IsPositive() {
		return domain.CashflowEntry{}, invalid("amount", "must be positive")
	}
	if entry.Date.IsZero() {
		entry.Date = s.clock.Now()
	}

	if entry.AccountKind == domain.AccountBank {
		if entry.AccountID <= 0 {
			return domain.CashflowEntry{}, invalid("account_id", "must be positive for bank entries")
		}
		bank, err := s.accounts.GetBank(ctx, entry.AccountID)
		if err != nil {
			return domain.CashflowEntry{}, fmt.Errorf("load bank %d: %w", entry.AccountID, err)
		}
		if bank == nil || bank.UserID != entry.UserID {
			return domain.CashflowEntry{}, fmt.Errorf("bank %d: %w", entry.AccountID, ErrNotFound)
		}
	}

	id, err := s.entries.Add(ctx, entry)
	if err != nil {
		return domain.CashflowEntry{}, fmt.Errorf("record cashflow entry: %w", err)
	}
	entry.ID = id

	delta := entry.Amount
	if entry.Kind == domain.EntrySpend {
		delta = delta.Neg()
	}
	switch entry.AccountKind {
	case domain.AccountBank:
		err = s.accounts.AdjustBank(ctx, entry.AccountID, delta)
	case domain.AccountWallet:
		err = s.accounts.AdjustWallet(ctx, entry.UserID, delta)
	case domain.AccountEwallet:
		err = s.accounts.AdjustEwallet(ctx, entry.UserID, delta)
	}
	if err != nil {
		return domain.CashflowEntry{}, fmt.Errorf("apply entry %d to account: %w", entry.ID, err)
	}
	s.balances.invalidate(ctx, entry.UserID)

	return entry, nil
}

// DayTotals sums today's income and spending across all of the user's
// accounts, in the service's time zone.
func (s *CashflowService) DayTotals(ctx context.Context, userID int64) (domain.DayTotals, error) {
	if userID <= 0 {
		return domain.DayTotals{}, invalid("user_id", "must be positive")
	}

	today := s.clock.Now()
	entries, err := s.entries.ListByDays(ctx, userID, today, today)
	if err != nil {
		return domain.DayTotals{}, fmt.Errorf("list entries for user %d: %w", userID, err)
	}

	totals := domain.DayTotals{
		Date:        today,
		IncomeTotal: decimal.Zero,
		SpendTotal:  decimal.Zero,
	}
	for _, e := range entries {
		switch e.Kind {
		case domain.EntryIncome:
			totals.IncomeTotal = totals.IncomeTotal.Add(e.Amount)
		case domain.EntrySpend:
			totals.SpendTotal = totals.SpendTotal.Add(e.Amount)
		}
	}
	return totals, nil
}

// WeeklySeries returns a daily total of one entry kind for each of the past
// seven days, today first.
func (s *CashflowService) WeeklySeries(ctx context.Context, userID int64, kind domain.EntryKind) ([]domain.DailyTotal, error) {
	if userID <= 0 {
		return nil, invalid("user_id", "must be positive")
	}
	switch kind {
	case domain.EntryIncome, domain.EntrySpend:
	default:
		return nil, invalid("kind", "must be income or spend")
	}

	today := s.clock.Now()
	entries, err := s.entries.ListByDays(ctx, userID, today.AddDate(0, 0, -6), today)
	if err != nil {
		return nil, fmt.Errorf("list entries for user %d: %w", userID, err)
	}

	series := make([]domain.DailyTotal, 7)
	for i := range series {
		series[i] = domain.DailyTotal{Date: today.AddDate(0, 0, -i), Total: decimal.Zero}
	}
	for _, e := range entries {
		if e.Kind != kind {
			continue
		}
		for i := range series {
			d := series[i].Date
			if e.Date.Year() == d.Year() && e.Date.YearDay() == d.YearDay() {
				series[i].Total = series[i].Total.Add(e.Amount)
				break
			}
		}
	}
	return series, nil
}

// Entries lists one account's records of one kind, newest first. An account
// with no matching records reports not found.
func (s *CashflowService) Entries(ctx context.Context, userID int64, accountKind domain.AccountKind, accountID int64, kind domain.EntryKind) ([]domain.CashflowEntry, error) {
	if userID <= 0 {
		return nil, invalid("user_id", "must be positive")
	}
	switch accountKind {
	case domain.AccountBank, domain.AccountWallet, domain.AccountEwallet:
	default:
		return nil, invalid("account_kind", "must be bank, wallet or ewallet")
	}
	switch kind {
	case domain.EntryIncome, domain.EntrySpend:
	default:
		return nil, invalid("kind", "must be income or spend")
	}
	if accountKind == domain.AccountBank && accountID <= 0 {
		return nil, invalid("account_id", "must be positive for bank entries")
	}

	entries, err := s.entries.ListByAccount(ctx, userID, accountKind, accountID, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s entries for user %d: %w", kind, userID, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no %s entries for user %d: %w", kind, userID, ErrNotFound)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

// WeeklyCategoryRatio groups the past seven days' entries of one kind by
// category and reports the dominant category's share of the week's total.
func (s *CashflowService) WeeklyCategoryRatio(ctx context.Context, userID int64, kind domain.EntryKind) (domain.CategoryRatio, error) {
	if userID <= 0 {
		return domain.CategoryRatio{}, invalid("user_id", "must be positive")
	}
	switch kind {
	case domain.EntryIncome, domain.EntrySpend:
	default:
		return domain.CategoryRatio{}, invalid("kind", "must be income or spend")
	}

	today := s.clock.Now()
	entries, err := s.entries.ListByDays(ctx, userID, today.AddDate(0, 0, -6), today)
	if err != nil {
		return domain.CategoryRatio{}, fmt.Errorf("list entries for user %d: %w", userID, err)
	}

	byCategory := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, e := range entries {
		if e.Kind != kind {
			continue
		}
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
		total = total.Add(e.Amount)
	}
	if len(byCategory) == 0 {
		return domain.CategoryRatio{}, fmt.Errorf("no %s entries for user %d this week: %w", kind, userID, ErrNotFound)
	}

	ratio := domain.CategoryRatio{MaxAmount: decimal.Zero, Ratio: decimal.Zero}
	for category, amount := range byCategory {
		pct := decimal.Zero
		if total.IsPositive() {
			pct = amount.Div(total).Mul(hundred)
		}
		ratio.Totals = append(ratio.Totals, domain.CategoryShare{
			Category:   category,
			Amount:     amount,
			Percentage: pct,
		})
		if amount.GreaterThan(ratio.MaxAmount) {
			ratio.MaxCategory = category
			ratio.MaxAmount = amount
		}
	}
	if total.IsPositive() {
		ratio.Ratio = ratio.MaxAmount.Div(total)
	}
	sort.Slice(ratio.Totals, func(i, j int) bool {
		return ratio.Totals[i].Amount.GreaterThan(ratio.Totals[j].Amount)
	})

	return ratio, nil
}

// MonthlySummary totals a user's income and spending for one month, with
// per-category spend percentages sorted largest first.
func (s *CashflowService) MonthlySummary(ctx context.Context, userID int64, year int, month time.Month) (domain.MonthlySummary, error) {
	if userID <= 0 {
		return domain.MonthlySummary{}, invalid("user_id", "must be positive")
	}
	if year <= 0 {
		return domain.MonthlySummary{}, invalid("year", "must be positive")
	}
	if month < time.January || month > time.December {
		return domain.MonthlySummary{}, invalid("month", "must be between 1 and 12")
	}

	entries, err := s.entries.ListByMonth(ctx, userID, year, month)
	if err != nil {
		return domain.MonthlySummary{}, fmt.Errorf("list entries for user %d: %w", userID, err)
	}

	summary := domain.MonthlySummary{
		Year:        year,
		Month:       month,
		IncomeTotal: decimal.Zero,
		SpendTotal:  decimal.Zero,
	}
	spendByCategory := make(map[string]decimal.Decimal)
	for _, e := range entries {
		switch e.Kind {
		case domain.EntryIncome:
			summary.IncomeTotal = summary.IncomeTotal.Add(e.Amount)
		case domain.EntrySpend:
			summary.SpendTotal = summary.SpendTotal.Add(e.Amount)
			spendByCategory[e.Category] = spendByCategory[e.Category].Add(e.Amount)
		}
	}
	summary.Net = summary.IncomeTotal.Sub(summary.SpendTotal)

	for category, amount := range spendByCategory {
		pct := decimal.Zero
		if summary.SpendTotal.IsPositive() {
			pct = amount.Div(summary.SpendTotal).Mul(hundred)
		}
		summary.Categories = append(summary.Categories, domain.CategoryShare{
			Category:   category,
			Amount:     amount,
			Percentage: pct,
		})
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Amount.GreaterThan(summary.Categories[j].Amount)
	})

	return summary, nil
}
