package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"fintrack/domain"
	"fintrack/repository"
)

var hundred = decimal.NewFromInt(100)

// BalanceService answers balance and percentage-breakdown queries across a
// user's bank, wallet and e-wallet accounts. The cross-account summary is
// cached; cache trouble is logged and never fails a request.
type BalanceService struct {
	accounts repository.AccountRepository
	cache    repository.CacheRepository
}

func NewBalanceService(accounts repository.AccountRepository, cache repository.CacheRepository) *BalanceService {
	return &BalanceService{accounts: accounts, cache: cache}
}

func balanceKey(userID int64) string {
	return fmt.Sprintf("balance:%d", userID)
}

func (s *BalanceService) invalidate(ctx context.Context, userID int64) {
	if err := s.cache.Delete(ctx, balanceKey(userID)); err != nil {
		log.Printf("Warning: failed to invalidate balance cache for user %d: %v", userID, err)
	}
}

// AddBank registers a bank account with an opening balance.
func (s *BalanceService) AddBank(ctx context.Context, bank domain.Bank) (domain.Bank, error) {
	if bank.UserID <= 0 {
		return domain.Bank{}, invalid("user_id", "must be positive")
	}
	if bank.Name == "" {
		return domain.Bank{}, invalid("name", "must not be empty")
	}
	if bank.Amount.IsNegative() {
		return domain.Bank{}, invalid("amount", "must not be negative")
	}

	id, err := s.accounts.AddBank(ctx, bank)
	if err != nil {
		return domain.Bank{}, fmt.Errorf("add bank: %w", err)
	}
	bank.ID = id
	s.invalidate(ctx, bank.UserID)

	return bank, nil
}

// Banks lists a user's bank accounts, each with its share of the user's
// total bank holdings.
func (s *BalanceService) Banks(ctx context.Context, userID int64) ([]domain.BankBalance, error) {
	if userID <= 0 {
		return nil, invalid("user_id", "must be positive")
	}

	banks, err := s.accounts.GetBanks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list banks for user %d: %w", userID, err)
	}
	if len(banks) == 0 {
		return nil, fmt.Errorf("user %d has no banks: %w", userID, ErrNotFound)
	}

	total := decimal.Zero
	for _, b := range banks {
		total = total.Add(b.Amount)
	}

	out := make([]domain.BankBalance, 0, len(banks))
	for _, b := range banks {
		pct := decimal.Zero
		if total.IsPositive() {
			pct = b.Amount.Div(total).Mul(hundred)
		}
		out = append(out, domain.BankBalance{Bank: b, BalancePercentage: pct})
	}

	return out, nil
}

// DeleteBank removes one bank account.
func (s *BalanceService) DeleteBank(ctx context.Context, bankID int64) error {
	if bankID <= 0 {
		return invalid("bank_id", "must be positive")
	}

	bank, err := s.accounts.GetBank(ctx, bankID)
	if err != nil {
		return fmt.Errorf("load bank %d: %w", bankID, err)
	}
	if bank == nil {
		return fmt.Errorf("bank %d: %w", bankID, ErrNotFound)
	}

	if err := s.accounts.DeleteBank(ctx, bankID); err != nil {
		return fmt.Errorf("delete bank %d: %w", bankID, err)
	}
	s.invalidate(ctx, bank.UserID)

	return nil
}

// SetWallet replaces the user's cash wallet balance.
func (s *BalanceService) SetWallet(ctx context.Context, userID int64, balance decimal.Decimal) error {
	if userID <= 0 {
		return invalid("user_id", "must be positive")
	}
	if balance.IsNegative() {
		return invalid("balance", "must not be negative")
	}

	if err := s.accounts.SetWallet(ctx, userID, balance); err != nil {
		return fmt.Errorf("set wallet for user %d: %w", userID, err)
	}
	s.invalidate(ctx, userID)

	return nil
}

// SetEwallet replaces the user's e-wallet balance.
func (s *BalanceService) SetEwallet(ctx context.Context, userID int64, balance decimal.Decimal) error {
	if userID <= 0 {
		return invalid("user_id", "must be positive")
	}
	if balance.IsNegative() {
		return invalid("balance", "must not be negative")
	}

	if err := s.accounts.SetEwallet(ctx, userID, balance); err != nil {
		return fmt.Errorf("set ewallet for user %d: %w", userID, err)
	}
	s.invalidate(ctx, userID)

	return nil
}

// TotalBalance aggregates the user's holdings across all account kinds.
// Served from cache when a fresh summary is available.
func (s *BalanceService) TotalBalance(ctx context.Context, userID int64) (domain.BalanceSummary, error) {
	if userID <= 0 {
		return domain.BalanceSummary{}, invalid("user_id", "must be positive")
	}

	key := balanceKey(userID)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var summary domain.BalanceSummary
		if err := json.Unmarshal([]byte(raw), &summary); err == nil {
			return summary, nil
		}
		log.Printf("Warning: corrupt balance cache entry for user %d, recomputing", userID)
	}

	summary, err := s.computeSummary(ctx, userID)
	if err != nil {
		return domain.BalanceSummary{}, err
	}

	if raw, err := json.Marshal(summary); err == nil {
		if err := s.cache.Set(ctx, key, string(raw), balanceCacheTTL); err != nil {
			log.Printf("Warning: failed to cache balance summary for user %d: %v", userID, err)
		}
	}

	return summary, nil
}

func (s *BalanceService) computeSummary(ctx context.Context, userID int64) (domain.BalanceSummary, error) {
	bankTotal, err := s.accounts.BankTotal(ctx, userID)
	if err != nil {
		return domain.BalanceSummary{}, fmt.Errorf("bank total for user %d: %w", userID, err)
	}
	wallet, err := s.accounts.GetWallet(ctx, userID)
	if err != nil {
		return domain.BalanceSummary{}, fmt.Errorf("wallet for user %d: %w", userID, err)
	}
	ewallet, err := s.accounts.GetEwallet(ctx, userID)
	if err != nil {
		return domain.BalanceSummary{}, fmt.Errorf("ewallet for user %d: %w", userID, err)
	}

	total := bankTotal.Add(wallet).Add(ewallet)
	bankPct, walletPct, ewalletPct := decimal.Zero, decimal.Zero, decimal.Zero
	if total.IsPositive() {
		bankPct = bankTotal.Div(total).Mul(hundred)
		walletPct = wallet.Div(total).Mul(hundred)
		ewalletPct = ewallet.Div(total).Mul(hundred)
	}

	return domain.BalanceSummary{
		TotalBalance:      total,
		BankBalance:       bankTotal,
		WalletBalance:     wallet,
		EwalletBalance:    ewallet,
		BankPercentage:    bankPct,
		WalletPercentage:  walletPct,
		EwalletPercentage: ewalletPct,
	}, nil
}

// BankShare reports one bank account's slice of the user's combined balance
// across all account kinds.
func (s *BalanceService) BankShare(ctx context.Context, userID, bankID int64) (domain.BankShare, error) {
	if userID <= 0 {
		return domain.BankShare{}, invalid("user_id", "must be positive")
	}
	if bankID <= 0 {
		return domain.BankShare{}, invalid("bank_id", "must be positive")
	}

	bank, err := s.accounts.GetBank(ctx, bankID)
	if err != nil {
		return domain.BankShare{}, fmt.Errorf("load bank %d: %w", bankID, err)
	}
	if bank == nil || bank.UserID != userID {
		return domain.BankShare{}, fmt.Errorf("bank %d: %w", bankID, ErrNotFound)
	}

	summary, err := s.computeSummary(ctx, userID)
	if err != nil {
		return domain.BankShare{}, err
	}

	share := decimal.Zero
	if summary.TotalBalance.IsPositive() {
		share = bank.Amount.Div(summary.TotalBalance).Mul(hundred)
	}

	return domain.BankShare{
		BalanceSummary:  summary,
		BankID:          bank.ID,
		BankAmount:      bank.Amount,
		SharePercentage: share,
	}, nil
}
