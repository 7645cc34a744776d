// Package service implements the operations the presentation layer calls:
// account management, personal finance, and pod accounting. Every mutating
// operation validates its input, mutates the in-memory database, and calls
// Save before returning, so a recorded action is never lost.
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bondi-app/bondi/internal/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidAmount = errors.New("amount must be a positive number")
	ErrInvalidDate   = errors.New("date must be in YYYY-MM-DD format")
	ErrMissingField  = errors.New("required field is missing")
)

// round2 rounds a currency amount to 2 decimal places, half away from zero.
func round2(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// lookupUser resolves a normalized username to its record.
func lookupUser(db *models.Database, username string) (*models.User, error) {
	user, ok := db.Users[username]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUserNotFound, username)
	}
	user.EnsureShape()
	return user, nil
}

// normalizeUsername applies the identifier convention: trimmed, lowercased.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// validateOptionalDate accepts an empty string or a YYYY-MM-DD date.
func validateOptionalDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(models.DateLayout, value); err != nil {
		return fmt.Errorf("%w: %s %q", ErrInvalidDate, field, value)
	}
	return nil
}

// requireField rejects an empty value, naming the field.
func requireField(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	return nil
}
