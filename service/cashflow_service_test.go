package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/domain"
	"fintrack/repository"
)

func newCashflowService(now time.Time) (*CashflowService, *BalanceService) {
	accounts := repository.NewAccountRepositoryMemory()
	balances := NewBalanceService(accounts, repository.NewMockCache())
	svc := NewCashflowService(repository.NewCashflowRepositoryMemory(), accounts, balances, fixedClock{now: now})
	return svc, balances
}

func TestRecord_IncomeAddsToWallet(t *testing.T) {
	now := date(2024, time.June, 10)
	svc, balances := newCashflowService(now)
	ctx := context.Background()

	if err := balances.SetWallet(ctx, 1, money("100")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Record(ctx, domain.CashflowEntry{
		UserID:      1,
		AccountKind: domain.AccountWallet,
		Kind:        domain.EntryIncome,
		Category:    "salary",
		Amount:      money("50"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary, err := balances.TotalBalance(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.WalletBalance.Equal(money("150")) {
		t.Errorf("expected wallet 150, got %s", summary.WalletBalance)
	}
}

func TestRecord_SpendSubtractsFromBank(t *testing.T) {
	now := date(2024, time.June, 10)
	svc, balances := newCashflowService(now)
	ctx := context.Background()

	bank, err := balances.AddBank(ctx, domain.Bank{UserID: 1, Name: "Maybank", Amount: money("500")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Record(ctx, domain.CashflowEntry{
		UserID:      1,
		AccountKind: domain.AccountBank,
		AccountID:   bank.ID,
		Kind:        domain.EntrySpend,
		Category:    "groceries",
		Amount:      money("120"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary, err := balances.TotalBalance(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.BankBalance.Equal(money("380")) {
		t.Errorf("expected bank balance 380, got %s", summary.BankBalance)
	}
}

func TestRecord_ForeignBankIsNotFound(t *testing.T) {
	now := date(2024, time.June, 10)
	svc, balances := newCashflowService(now)
	ctx := context.Background()

	bank, err := balances.AddBank(ctx, domain.Bank{UserID: 2, Name: "Other", Amount: money("500")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Record(ctx, domain.CashflowEntry{
		UserID:      1,
		AccountKind: domain.AccountBank,
		AccountID:   bank.ID,
		Kind:        domain.EntrySpend,
		Category:    "groceries",
		Amount:      money("10"),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecord_Validation(t *testing.T) {
	now := date(2024, time.June, 10)
	svc, _ := newCashflowService(now)

	cases := []struct {
		name  string
		entry domain.CashflowEntry
	}{
		{"zero user", domain.CashflowEntry{AccountKind: domain.AccountWallet, Kind: domain.EntryIncome, Category: "x", Amount: money("1")}},
		{"bad account kind", domain.CashflowEntry{UserID: 1, AccountKind: "crypto", Kind: domain.EntryIncome, Category: "x", Amount: money("1")}},
		{"bad kind", domain.CashflowEntry{UserID: 1, AccountKind: domain.AccountWallet, Kind: "transfer", Category: "x", Amount: money("1")}},
		{"empty category", domain.CashflowEntry{UserID: 1, AccountKind: domain.AccountWallet, Kind: domain.EntryIncome, Amount: money("1")}},
		{"zero amount", domain.CashflowEntry{UserID: 1, AccountKind: domain.AccountWallet, Kind: domain.EntryIncome, Category: "x"}},
	}

	for _, tc := range cases {
		_, err := svc.Record(context.Background(), tc.entry)

		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

func TestMonthlySummary_TotalsAndCategoryShares(t *testing.T) {
	now := date(2024, time.June, 10)
	svc, _ := newCashflowService(now)
	ctx := context.Background()

	entries := []domain.CashflowEntry{
		{UserID: 1, AccountKind: domain.AccountWallet, Kind: domain.EntryIncome, Category: "salary", Amount: money("1000")},
		{UserID: 1, AccountKind: domain.AccountWallet, Kind: domain.EntrySpend, Category: "rent", Amount: money("300")},
		{UserID: 1, AccountKind: domain.AccountWallet, Kind: domain.EntrySpend, Category: "food", Amount: money("100")},
	}
	for _, e := range entries {
		if _, err := svc.Record(ctx, e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	summary, err := svc.MonthlySummary(ctx, 1, 2024, time.June)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.IncomeTotal.Equal(money("1000")) {
		t.Errorf("expected income 1000, got %s", summary.IncomeTotal)
	}
	if !summary.SpendTotal.Equal(money("400")) {
		t.Errorf("expected spend 400, got %s", summary.SpendTotal)
	}
	if !summary.Net.Equal(money("600")) {
		t.Errorf("expected net 600, got %s", summary.Net)
	}
	if len(summary.Categories) != 2 {
		t.Fatalf("expected 2 spend categories, got %d", len(summary.Categories))
	}
	if summary.Categories[0].Category != "rent" || !summary.Categories[0].Percentage.Equal(money("75")) {
		t.Errorf("expected rent at 75%% first, got %+v", summary.Categories[0])
	}
}

func TestDayTotals_SumsOnlyToday(t *testing.T) {
	now := date(2024, time.June, 10)
	svc, _ := newCashflowService(now)
	ctx := context.Background()

	entries := []domain.CashflowEntry{
		{UserID: 1, AccountKind: domain.AccountWallet, Kind: domain.EntryIncome, Category: "salary", Amount: money("100")},
		// Same day, later wall-clock time: still counts for today.
		{UserID: 1, AccountKind: domain.AccountEwallet, Kind: domain.EntrySpend, Category: "food", Amount: money("40"), Date: now.Add(18 * time.Hour)},
		{UserID: 1, AccountKind: domain.AccountWallet, Kind: domain.EntrySpend, Category: "food", Amount: money("99"), Date: now.AddDate(0, 0, -1)},
	}
	for _, e := range entries {
		if _, err := svc.Record(ctx, e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	totals, err := svc.DayTotals(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !totals.IncomeTotal.Equal(money("100")) {
		t.Errorf("expected income 100, got %s", totals.IncomeTotal)
	}
	if !totals.SpendTotal.Equal(money("40")) {
		t.Errorf("expected spend 40, got %s", totals.SpendTotal)
	}
}

func TestWeeklySeries_SevenDailyBucketsTodayFirst(t *testing.T) {
	now := date(2024, time.June, 10)
	svc, _ := newCashflowService(now)
	ctx := context.Background()

	entries := []domain.CashflowEntry{
		{UserID: 1, AccountKind: domain.AccountWallet, Kind: domain.EntrySpend, Category: "food", Amount: money("50")},
		{UserID: 1, AccountKind: domain.AccountWallet, Kind: domain.EntrySpend, Category: "food", Amount: money("20"), Date: now.AddDate(0, 0, -3)},
		{UserID: 1, AccountKind: domain.AccountWallet, Kind: domain.EntrySpend, Category: "food", Amount: money("99"), Date: now.AddDate(0, 0, -7)},
		{UserID: 1, AccountKind: domain.AccountWallet, Kind: domain.EntryIncome, Category: "salary", Amount: money("500")},
	}
	for _, e := range entries {
		if _, err := svc.Record(ctx, e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	series, err := svc.WeeklySeries(ctx, 1, domain.EntrySpend)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(series) != 7 {
		t.Fatalf("expected 7 daily buckets, got %d", len(series))
	}
	if !series[0].Date.Equal(now) || !series[0].Total.Equal(money("50")) {
		t.Errorf("expected today's bucket first with 50, got %+v", series[0])
	}
	if !series[3].Total.Equal(money("20")) {
		t.Errorf("expected 20 three days back, got %s", series[3].Total)
	}
	for _, i := range []int{1, 2, 4, 5, 6} {
		if !series[i].Total.IsZero() {
			t.Errorf("expected empty bucket at day -%d, got %s", i, series[i].Total)
		}
	}
}

func TestEntries_NewestFirstScopedToAccountAndKind(t *testing.T) {
	now := date(2024, time.June, 10)
	svc, balances := newCashflowService(now)
	ctx := context.Background()

	bank, err := balances.AddBank(ctx, domain.Bank{UserID: 1, Name: "Maybank", Amount: money("500")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other, err := balances.AddBank(ctx, domain.Bank{UserID: 1, Name: "Other", Amount: money("500")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := []domain.CashflowEntry{
		{UserID: 1, AccountKind: domain.AccountBank, AccountID: bank.ID, Kind: domain.EntryIncome, Category: "salary", Amount: money("100"), Date: now.AddDate(0, 0, -5)},
		{UserID: 1, AccountKind: domain.AccountBank, AccountID: bank.ID, Kind: domain.EntryIncome, Category: "bonus", Amount: money("200")},
		{UserID: 1, AccountKind: domain.AccountBank, AccountID: bank.ID, Kind: domain.EntrySpend, Category: "rent", Amount: money("300")},
		{UserID: 1, AccountKind: domain.AccountBank, AccountID: other.ID, Kind: domain.EntryIncome, Category: "salary", Amount: money("50")},
	}
	for _, e := range entries {
		if _, err := svc.Record(ctx, e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got, err := svc.Entries(ctx, 1, domain.AccountBank, bank.ID, domain.EntryIncome)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 income entries for the bank, got %d", len(got))
	}
	if got[0].Category != "bonus" || got[1].Category != "salary" {
		t.Errorf("expected newest entry first, got %s then %s", got[0].Category, got[1].Category)
	}
}

func TestEntries_EmptyAccountIsNotFound(t *testing.T) {
	now := date(2024, time.June, 10)
	svc, _ := newCashflowService(now)

	_, err := svc.Entries(context.Background(), 1, domain.AccountWallet, 0, domain.EntryIncome)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWeeklyCategoryRatio_DominantCategory(t *testing.T) {
	now := date(2024, time.June, 10)
	svc, _ := newCashflowService(now)
	ctx := context.Background()

	entries := []domain.CashflowEntry{
		{UserID: 1, AccountKind: domain.AccountWallet, Kind: domain.EntrySpend, Category: "food", Amount: money("60")},
		{UserID: 1, AccountKind: domain.AccountWallet, Kind: domain.EntrySpend, Category: "transport", Amount: money("40"), Date: now.AddDate(0, 0, -2)},
		{UserID: 1, AccountKind: domain.AccountWallet, Kind: domain.EntryIncome, Category: "salary", Amount: money("1000")},
	}
	for _, e := range entries {
		if _, err := svc.Record(ctx, e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	ratio, err := svc.WeeklyCategoryRatio(ctx, 1, domain.EntrySpend)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ratio.MaxCategory != "food" || !ratio.MaxAmount.Equal(money("60")) {
		t.Errorf("expected food at 60 as the dominant category, got %s at %s", ratio.MaxCategory, ratio.MaxAmount)
	}
	if !ratio.Ratio.Equal(money("0.6")) {
		t.Errorf("expected ratio 0.6, got %s", ratio.Ratio)
	}
	if len(ratio.Totals) != 2 || ratio.Totals[0].Category != "food" {
		t.Errorf("expected both categories with food first, got %+v", ratio.Totals)
	}
	if !ratio.Totals[0].Percentage.Equal(money("60")) {
		t.Errorf("expected food at 60%%, got %s", ratio.Totals[0].Percentage)
	}
}

func TestWeeklyCategoryRatio_EmptyWeekIsNotFound(t *testing.T) {
	now := date(2024, time.June, 10)
	svc, _ := newCashflowService(now)
	ctx := context.Background()

	// Entries older than the window must not count.
	if _, err := svc.Record(ctx, domain.CashflowEntry{
		UserID:      1,
		AccountKind: domain.AccountWallet,
		Kind:        domain.EntrySpend,
		Category:    "food",
		Amount:      money("10"),
		Date:        now.AddDate(0, 0, -10),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.WeeklyCategoryRatio(ctx, 1, domain.EntrySpend)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMonthlySummary_OtherMonthsExcluded(t *testing.T) {
	now := date(2024, time.June, 10)
	svc, _ := newCashflowService(now)
	ctx := context.Background()

	if _, err := svc.Record(ctx, domain.CashflowEntry{
		UserID:      1,
		AccountKind: domain.AccountWallet,
		Kind:        domain.EntrySpend,
		Category:    "food",
		Amount:      money("100"),
		Date:        date(2024, time.May, 20),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary, err := svc.MonthlySummary(ctx, 1, 2024, time.June)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.SpendTotal.IsZero() {
		t.Errorf("expected empty June summary, got spend %s", summary.SpendTotal)
	}
}
