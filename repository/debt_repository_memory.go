package repository

import (
	"context"
	"sync"
	"time"

	"fintrack/domain"
)

// DebtRepositoryMemory is an in-memory implementation of DebtRepository.
type DebtRepositoryMemory struct {
	mu     sync.RWMutex
	debts  map[int64]domain.Debt
	nextID int64
}

// NewDebtRepositoryMemory creates a new in-memory debt repository.
func NewDebtRepositoryMemory() *DebtRepositoryMemory {
	return &DebtRepositoryMemory{
		debts:  make(map[int64]domain.Debt),
		nextID: 1,
	}
}

func (r *DebtRepositoryMemory) Create(ctx context.Context, debt domain.Debt) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	debt.ID = r.nextID
	r.nextID++
	r.debts[debt.ID] = debt
	return debt.ID, nil
}

func (r *DebtRepositoryMemory) GetByID(ctx context.Context, id int64) (*domain.Debt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	debt, ok := r.debts[id]
	if !ok {
		return nil, nil
	}
	return &debt, nil
}

func (r *DebtRepositoryMemory) GetByOwner(ctx context.Context, userID int64) ([]domain.Debt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Debt
	for _, debt := range r.debts {
		if debt.UserID == userID {
			out = append(out, debt)
		}
	}
	return out, nil
}

func (r *DebtRepositoryMemory) Update(ctx context.Context, debt domain.Debt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.debts[debt.ID] = debt
	return nil
}

func (r *DebtRepositoryMemory) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.debts, id)
	return nil
}

func (r *DebtRepositoryMemory) DueBetween(ctx context.Context, after, until time.Time) ([]domain.Debt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Debt
	for _, debt := range r.debts {
		if debt.NextDueDate.After(after) && !debt.NextDueDate.After(until) {
			out = append(out, debt)
		}
	}
	return out, nil
}
