package service

import "time"

const (
	MaxTermYears  = 50  // longest supported contract
	MaxNameLength = 100 // free-text labels

	// ReminderInterval is how often the due-window sweep runs.
	ReminderInterval = 24 * time.Hour

	// balanceCacheTTL bounds staleness of the cached balance summary.
	balanceCacheTTL = 5 * time.Minute
)
