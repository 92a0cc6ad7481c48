package service

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"fintrack/calendar"
	"fintrack/domain"
	"fintrack/repository"
)

// ReminderService finds debts whose next due date falls inside an upcoming
// day window and pushes a reminder for each. One sweep runs per tick; a
// sweep that is still running when the next tick fires is not overlapped.
type ReminderService struct {
	repo       repository.DebtRepository
	notifier   Notifier
	clock      Clock
	windowDays int
	inFlight   atomic.Bool
}

func NewReminderService(repo repository.DebtRepository, notifier Notifier, clock Clock, windowDays int) *ReminderService {
	return &ReminderService{
		repo:       repo,
		notifier:   notifier,
		clock:      clock,
		windowDays: windowDays,
	}
}

// DueWithin returns debts due after now and within the next days days,
// boundary inclusive. An empty window is not an error.
func (s *ReminderService) DueWithin(ctx context.Context, days int) ([]domain.Debt, error) {
	now := s.clock.Now()
	return s.repo.DueBetween(ctx, now, now.AddDate(0, 0, days))
}

// Sweep notifies every debt inside the window. Each dispatch is independent:
// a failed push is logged and the sweep moves on to the next debt.
func (s *ReminderService) Sweep(ctx context.Context) {
	debts, err := s.DueWithin(ctx, s.windowDays)
	if err != nil {
		log.Printf("reminder sweep: listing due debts: %v", err)
		return
	}

	now := s.clock.Now()
	for _, d := range debts {
		daysLeft := calendar.DaysUntil(now, d.NextDueDate)
		body := fmt.Sprintf("You have %d days left to make your payment.", daysLeft)
		if err := s.notifier.SendPush(ctx, d.NotifyToken, "Payment Reminder", body); err != nil {
			log.Printf("reminder sweep: push for debt %d failed: %v", d.ID, err)
		}
	}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
// A tick arriving while the previous sweep is still running is skipped.
func (s *ReminderService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.sweepOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *ReminderService) sweepOnce(ctx context.Context) {
	if !s.inFlight.CompareAndSwap(false, true) {
		log.Printf("reminder sweep: previous sweep still running, skipping")
		return
	}
	go func() {
		defer s.inFlight.Store(false)
		s.Sweep(ctx)
	}()
}
