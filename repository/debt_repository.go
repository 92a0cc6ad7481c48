package repository

import (
	"context"
	"time"

	"fintrack/domain"
)

// DebtRepository is the persistent store for debt records. Lookups that find
// nothing return a nil debt (or an empty slice), not an error; the service
// layer decides what absence means.
type DebtRepository interface {
	Create(ctx context.Context, debt domain.Debt) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Debt, error)
	GetByOwner(ctx context.Context, userID int64) ([]domain.Debt, error)
	Update(ctx context.Context, debt domain.Debt) error
	Delete(ctx context.Context, id int64) error

	// DueBetween returns debts whose next due date falls in (after, until],
	// i.e. strictly later than after and no later than until.
	DueBetween(ctx context.Context, after, until time.Time) ([]domain.Debt, error)
}
