package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"fintrack/domain"
)

// DebtRepositoryPostgres stores debts in Postgres via pgx.
type DebtRepositoryPostgres struct {
	pool *pgxpool.Pool
}

func NewDebtRepositoryPostgres(pool *pgxpool.Pool) *DebtRepositoryPostgres {
	return &DebtRepositoryPostgres{pool: pool}
}

// EnsureSchema creates the debts table when it does not exist yet.
func (r *DebtRepositoryPostgres) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS debts (
			id                 BIGSERIAL PRIMARY KEY,
			user_id            BIGINT NOT NULL,
			name               TEXT NOT NULL,
			installment_amount NUMERIC NOT NULL,
			total_amount       NUMERIC NOT NULL,
			cumulative_paid    NUMERIC NOT NULL,
			start_date         DATE NOT NULL,
			next_due_date      DATE NOT NULL,
			end_date           DATE NOT NULL,
			term_years         INT NOT NULL,
			months_remaining   INT NOT NULL,
			notify_token       TEXT NOT NULL,
			notify_email       TEXT NOT NULL
		);
	`)
	return err
}

func (r *DebtRepositoryPostgres) Create(ctx context.Context, d domain.Debt) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO debts(user_id, name, installment_amount, total_amount, cumulative_paid,
			start_date, next_due_date, end_date, term_years, months_remaining, notify_token, notify_email)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id
	`, d.UserID, d.Name, d.InstallmentAmount.String(), d.TotalAmount.String(), d.CumulativePaid.String(),
		d.StartDate, d.NextDueDate, d.EndDate, d.TermYears, d.MonthsRemaining, d.NotifyToken, d.NotifyEmail,
	).Scan(&id)
	return id, err
}

const debtColumns = `id, user_id, name, installment_amount::text, total_amount::text, cumulative_paid::text,
	start_date, next_due_date, end_date, term_years, months_remaining, notify_token, notify_email`

func scanDebt(row pgx.Row) (domain.Debt, error) {
	var d domain.Debt
	var installment, total, cumulative string
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &installment, &total, &cumulative,
		&d.StartDate, &d.NextDueDate, &d.EndDate, &d.TermYears, &d.MonthsRemaining, &d.NotifyToken, &d.NotifyEmail)
	if err != nil {
		return domain.Debt{}, err
	}
	if d.InstallmentAmount, err = decimal.NewFromString(installment); err != nil {
		return domain.Debt{}, fmt.Errorf("parse installment_amount: %w", err)
	}
	if d.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return domain.Debt{}, fmt.Errorf("parse total_amount: %w", err)
	}
	if d.CumulativePaid, err = decimal.NewFromString(cumulative); err != nil {
		return domain.Debt{}, fmt.Errorf("parse cumulative_paid: %w", err)
	}
	return d, nil
}

func (r *DebtRepositoryPostgres) GetByID(ctx context.Context, id int64) (*domain.Debt, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+debtColumns+` FROM debts WHERE id=$1`, id)
	d, err := scanDebt(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DebtRepositoryPostgres) queryDebts(ctx context.Context, sql string, args ...any) ([]domain.Debt, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DebtRepositoryPostgres) GetByOwner(ctx context.Context, userID int64) ([]domain.Debt, error) {
	return r.queryDebts(ctx, `SELECT `+debtColumns+` FROM debts WHERE user_id=$1`, userID)
}

func (r *DebtRepositoryPostgres) Update(ctx context.Context, d domain.Debt) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE debts
		SET cumulative_paid=$2, next_due_date=$3, months_remaining=$4
		WHERE id=$1
	`, d.ID, d.CumulativePaid.String(), d.NextDueDate, d.MonthsRemaining)
	return err
}

func (r *DebtRepositoryPostgres) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM debts WHERE id=$1`, id)
	return err
}

// dateOnly drops the time-of-day so bounds compare against the DATE column
// as calendar days, regardless of the sweep's wall-clock time.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (r *DebtRepositoryPostgres) DueBetween(ctx context.Context, after, until time.Time) ([]domain.Debt, error) {
	return r.queryDebts(ctx, `
		SELECT `+debtColumns+` FROM debts
		WHERE next_due_date > $1::date AND next_due_date <= $2::date
	`, dateOnly(after), dateOnly(until))
}
