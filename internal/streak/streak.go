// Package streak derives the daily-activity streak from a user's single
// last-active date. Recording an expense, a goal saving, or a shared expense
// counts as activity; creating goals or pods alone does not.
package streak

import (
	"time"

	"github.com/bondi-app/bondi/internal/models"
)

// Record applies one qualifying activity on the given day:
//
//   - same day as the last activity: no-op, so same-day repeats are idempotent
//   - exactly one day after the last activity: count increments
//   - anything else, including the first activity ever, a multi-day gap, or a
//     backdated event: count resets to 1
//
// The caller is responsible for persisting the database afterwards.
func Record(user *models.User, day time.Time) {
	today := day.Format(models.DateLayout)

	s := &user.Streak
	if s.LastActiveOn != nil && *s.LastActiveOn == today {
		return
	}

	if s.LastActiveOn != nil && nextDay(*s.LastActiveOn) == today {
		s.Count++
	} else {
		s.Count = 1
	}
	s.LastActiveOn = &today
}

// Badge maps a streak count to its display badge.
func Badge(count int) string {
	switch {
	case count >= 30:
		return "Legendary"
	case count >= 14:
		return "On Fire"
	case count >= 7:
		return "Streaker"
	case count >= 3:
		return "Getting Consistent"
	case count >= 1:
		return "Day 1"
	default:
		return "—"
	}
}

// nextDay returns the calendar day after a stored date, or "" when the stored
// value does not parse (which forces a reset in Record).
func nextDay(stored string) string {
	d, err := time.Parse(models.DateLayout, stored)
	if err != nil {
		return ""
	}
	return d.AddDate(0, 0, 1).Format(models.DateLayout)
}
