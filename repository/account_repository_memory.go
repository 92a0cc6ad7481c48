package repository

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"fintrack/domain"
)

// AccountRepositoryMemory is an in-memory implementation of
// AccountRepository. Missing wallet/e-wallet balances read as zero.
type AccountRepositoryMemory struct {
	mu       sync.RWMutex
	banks    map[int64]domain.Bank
	wallets  map[int64]decimal.Decimal
	ewallets map[int64]decimal.Decimal
	nextID   int64
}

func NewAccountRepositoryMemory() *AccountRepositoryMemory {
	return &AccountRepositoryMemory{
		banks:    make(map[int64]domain.Bank),
		wallets:  make(map[int64]decimal.Decimal),
		ewallets: make(map[int64]decimal.Decimal),
		nextID:   1,
	}
}

func (r *AccountRepositoryMemory) AddBank(ctx context.Context, bank domain.Bank) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bank.ID = r.nextID
	r.nextID++
	r.banks[bank.ID] = bank
	return bank.ID, nil
}

func (r *AccountRepositoryMemory) GetBank(ctx context.Context, bankID int64) (*domain.Bank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bank, ok := r.banks[bankID]
	if !ok {
		return nil, nil
	}
	return &bank, nil
}

func (r *AccountRepositoryMemory) GetBanks(ctx context.Context, userID int64) ([]domain.Bank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Bank
	for _, bank := range r.banks {
		if bank.UserID == userID {
			out = append(out, bank)
		}
	}
	return out, nil
}

func (r *AccountRepositoryMemory) DeleteBank(ctx context.Context, bankID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.banks, bankID)
	return nil
}

func (r *AccountRepositoryMemory) BankTotal(ctx context.Context, userID int64) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := decimal.Zero
	for _, bank := range r.banks {
		if bank.UserID == userID {
			total = total.Add(bank.Amount)
		}
	}
	return total, nil
}

func (r *AccountRepositoryMemory) AdjustBank(ctx context.Context, bankID int64, delta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bank, ok := r.banks[bankID]
	if !ok {
		return nil
	}
	bank.Amount = bank.Amount.Add(delta)
	r.banks[bankID] = bank
	return nil
}

func (r *AccountRepositoryMemory) SetWallet(ctx context.Context, userID int64, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wallets[userID] = balance
	return nil
}

func (r *AccountRepositoryMemory) GetWallet(ctx context.Context, userID int64) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.wallets[userID], nil
}

func (r *AccountRepositoryMemory) AdjustWallet(ctx context.Context, userID int64, delta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wallets[userID] = r.wallets[userID].Add(delta)
	return nil
}

func (r *AccountRepositoryMemory) SetEwallet(ctx context.Context, userID int64, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ewallets[userID] = balance
	return nil
}

func (r *AccountRepositoryMemory) GetEwallet(ctx context.Context, userID int64) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.ewallets[userID], nil
}

func (r *AccountRepositoryMemory) AdjustEwallet(ctx context.Context, userID int64, delta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ewallets[userID] = r.ewallets[userID].Add(delta)
	return nil
}
