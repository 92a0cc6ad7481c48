package repository

import (
	"context"
	"sync"
	"time"

	"fintrack/domain"
)

// CashflowRepository stores income and spend records. Range queries compare
// calendar days, not instants.
type CashflowRepository interface {
	Add(ctx context.Context, entry domain.CashflowEntry) (int64, error)
	ListByMonth(ctx context.Context, userID int64, year int, month time.Month) ([]domain.CashflowEntry, error)

	// ListByDays returns entries dated between from and until inclusive.
	ListByDays(ctx context.Context, userID int64, from, until time.Time) ([]domain.CashflowEntry, error)

	// ListByAccount returns one account's entries of one kind. For bank
	// accounts accountID selects the bank; wallet and e-wallet entries are
	// keyed by user alone and ignore accountID.
	ListByAccount(ctx context.Context, userID int64, accountKind domain.AccountKind, accountID int64, kind domain.EntryKind) ([]domain.CashflowEntry, error)
}

// CashflowRepositoryMemory is an in-memory implementation of
// CashflowRepository.
type CashflowRepositoryMemory struct {
	mu      sync.RWMutex
	entries []domain.CashflowEntry
	nextID  int64
}

func NewCashflowRepositoryMemory() *CashflowRepositoryMemory {
	return &CashflowRepositoryMemory{nextID: 1}
}

func (r *CashflowRepositoryMemory) Add(ctx context.Context, entry domain.CashflowEntry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, entry)
	return entry.ID, nil
}

func (r *CashflowRepositoryMemory) ListByMonth(ctx context.Context, userID int64, year int, month time.Month) ([]domain.CashflowEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.CashflowEntry
	for _, e := range r.entries {
		if e.UserID == userID && e.Date.Year() == year && e.Date.Month() == month {
			out = append(out, e)
		}
	}
	return out, nil
}

func sameOrLaterDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay > by
	}
	if am != bm {
		return am > bm
	}
	return ad >= bd
}

func (r *CashflowRepositoryMemory) ListByDays(ctx context.Context, userID int64, from, until time.Time) ([]domain.CashflowEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.CashflowEntry
	for _, e := range r.entries {
		if e.UserID != userID {
			continue
		}
		if sameOrLaterDay(e.Date, from) && sameOrLaterDay(until, e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *CashflowRepositoryMemory) ListByAccount(ctx context.Context, userID int64, accountKind domain.AccountKind, accountID int64, kind domain.EntryKind) ([]domain.CashflowEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.CashflowEntry
	for _, e := range r.entries {
		if e.UserID != userID || e.AccountKind != accountKind || e.Kind != kind {
			continue
		}
		if accountKind == domain.AccountBank && e.AccountID != accountID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
