package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"fintrack/domain"
)

// AccountRepository stores bank accounts and the singleton wallet/e-wallet
// balances per user.
type AccountRepository interface {
	AddBank(ctx context.Context, bank domain.Bank) (int64, error)
	GetBank(ctx context.Context, bankID int64) (*domain.Bank, error)
	GetBanks(ctx context.Context, userID int64) ([]domain.Bank, error)
	DeleteBank(ctx context.Context, bankID int64) error
	BankTotal(ctx context.Context, userID int64) (decimal.Decimal, error)
	AdjustBank(ctx context.Context, bankID int64, delta decimal.Decimal) error

	SetWallet(ctx context.Context, userID int64, balance decimal.Decimal) error
	GetWallet(ctx context.Context, userID int64) (decimal.Decimal, error)
	AdjustWallet(ctx context.Context, userID int64, delta decimal.Decimal) error

	SetEwallet(ctx context.Context, userID int64, balance decimal.Decimal) error
	GetEwallet(ctx context.Context, userID int64) (decimal.Decimal, error)
	AdjustEwallet(ctx context.Context, userID int64, delta decimal.Decimal) error
}
