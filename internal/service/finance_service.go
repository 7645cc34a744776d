package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bondi-app/bondi/internal/models"
	"github.com/bondi-app/bondi/internal/ordering"
	"github.com/bondi-app/bondi/internal/store"
	"github.com/bondi-app/bondi/internal/streak"
)

var ErrGoalNotFound = errors.New("goal not found")

// DefaultCategory is used when an expense is recorded without one.
const DefaultCategory = "General"

// FinanceService handles personal expenses, goals, and savings.
type FinanceService struct {
	store *store.Store
	now   func() time.Time
}

// NewFinanceService creates a FinanceService over the given store.
func NewFinanceService(st *store.Store) *FinanceService {
	return &FinanceService{store: st, now: time.Now}
}

// AddExpense records a personal expense, updates the streak, and saves.
func (s *FinanceService) AddExpense(db *models.Database, username string, amount float64, category, note string) (models.Expense, error) {
	user, err := lookupUser(db, username)
	if err != nil {
		return models.Expense{}, err
	}
	if amount <= 0 {
		return models.Expense{}, fmt.Errorf("%w: amount %.2f", ErrInvalidAmount, amount)
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}

	exp := models.Expense{
		Amount:   round2(amount),
		Category: category,
		Note:     strings.TrimSpace(note),
		Date:     s.now().Format(models.TimestampLayout),
	}
	user.Expenses = append(user.Expenses, exp)
	streak.Record(user, s.now())

	if err := s.store.Save(db); err != nil {
		return models.Expense{}, err
	}
	slog.Debug("expense added", "username", username, "amount", exp.Amount, "category", exp.Category)
	return exp, nil
}

// ListExpenses returns the user's expenses sorted by amount descending, with
// the running total of all of them.
func (s *FinanceService) ListExpenses(db *models.Database, username string) ([]models.Expense, float64, error) {
	user, err := lookupUser(db, username)
	if err != nil {
		return nil, 0, err
	}

	var total float64
	for _, e := range user.Expenses {
		total += e.Amount
	}
	return ordering.ByAmountDesc(user.Expenses), round2(total), nil
}

// CreateGoal adds a savings goal. Creating a goal alone does not count as
// streak activity; only funding one does.
func (s *FinanceService) CreateGoal(db *models.Database, username, name string, target float64, deadline string) (models.Goal, error) {
	user, err := lookupUser(db, username)
	if err != nil {
		return models.Goal{}, err
	}
	if err := requireField("goal name", name); err != nil {
		return models.Goal{}, err
	}
	if target <= 0 {
		return models.Goal{}, fmt.Errorf("%w: target %.2f", ErrInvalidAmount, target)
	}
	if err := validateOptionalDate("deadline", deadline); err != nil {
		return models.Goal{}, err
	}

	goal := models.Goal{
		Name:      strings.TrimSpace(name),
		Target:    round2(target),
		Saved:     0,
		Deadline:  deadline,
		CreatedAt: s.now().Format(models.TimestampLayout),
	}
	user.Goals = append(user.Goals, goal)

	if err := s.store.Save(db); err != nil {
		return models.Goal{}, err
	}
	slog.Debug("goal created", "username", username, "goal", goal.Name, "target", goal.Target)
	return goal, nil
}

// AddSaving adds an amount to the goal at the given index. Saved only grows;
// exceeding the target is allowed.
func (s *FinanceService) AddSaving(db *models.Database, username string, goalIndex int, amount float64) (models.Goal, error) {
	user, err := lookupUser(db, username)
	if err != nil {
		return models.Goal{}, err
	}
	if goalIndex < 0 || goalIndex >= len(user.Goals) {
		return models.Goal{}, fmt.Errorf("%w: index %d", ErrGoalNotFound, goalIndex)
	}
	if amount <= 0 {
		return models.Goal{}, fmt.Errorf("%w: amount %.2f", ErrInvalidAmount, amount)
	}

	goal := &user.Goals[goalIndex]
	goal.Saved = round2(goal.Saved + amount)
	streak.Record(user, s.now())

	if err := s.store.Save(db); err != nil {
		return models.Goal{}, err
	}
	slog.Debug("saving added", "username", username, "goal", goal.Name, "saved", goal.Saved)
	return *goal, nil
}

// Goals returns the user's goals in creation order.
func (s *FinanceService) Goals(db *models.Database, username string) ([]models.Goal, error) {
	user, err := lookupUser(db, username)
	if err != nil {
		return nil, err
	}
	return user.Goals, nil
}
