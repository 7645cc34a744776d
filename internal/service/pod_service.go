package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bondi-app/bondi/internal/models"
	"github.com/bondi-app/bondi/internal/ordering"
	"github.com/bondi-app/bondi/internal/split"
	"github.com/bondi-app/bondi/internal/store"
	"github.com/bondi-app/bondi/internal/streak"
)

var (
	ErrPodNotFound      = errors.New("pod not found")
	ErrNoMembers        = errors.New("pod needs at least one member")
	ErrUnknownMembers   = errors.New("unknown member usernames")
	ErrInvalidPodType   = errors.New("pod type must be ongoing or temporary")
	ErrUnknownSplitType = errors.New("unknown split type")
	ErrIncompleteSplit  = errors.New("split configuration must cover every pod member")
)

// Split policy names accepted by AddSharedExpense.
const (
	SplitEqual      = "equal"
	SplitPercentage = "percentage"
	SplitCustom     = "custom"
)

// PodService handles pods and their shared expenses.
type PodService struct {
	store *store.Store
	now   func() time.Time
}

// NewPodService creates a PodService over the given store.
func NewPodService(st *store.Store) *PodService {
	return &PodService{store: st, now: time.Now}
}

// CreatePod creates a pod owned by username. Members are normalized and
// deduplicated in input order; every member must be a registered user.
// Creating a pod is not streak activity.
func (s *PodService) CreatePod(db *models.Database, username, name, podType string, members []string, includeSelf bool, endDate string) (models.Pod, error) {
	username = normalizeUsername(username)
	user, err := lookupUser(db, username)
	if err != nil {
		return models.Pod{}, err
	}
	if err := requireField("pod name", name); err != nil {
		return models.Pod{}, err
	}

	podType = strings.TrimSpace(podType)
	if podType == "" {
		podType = models.PodTypeOngoing
	}
	if podType != models.PodTypeOngoing && podType != models.PodTypeTemporary {
		return models.Pod{}, fmt.Errorf("%w: %q", ErrInvalidPodType, podType)
	}

	seen := make(map[string]bool)
	var deduped []string
	for _, m := range members {
		m = normalizeUsername(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		deduped = append(deduped, m)
	}
	if includeSelf && !seen[username] {
		deduped = append(deduped, username)
	}
	if len(deduped) == 0 {
		return models.Pod{}, ErrNoMembers
	}

	sorted := ordering.Usernames(db)
	var unknown []string
	for _, m := range deduped {
		if !ordering.SearchUsername(sorted, m) {
			unknown = append(unknown, m)
		}
	}
	if len(unknown) > 0 {
		return models.Pod{}, fmt.Errorf("%w: %s", ErrUnknownMembers, strings.Join(unknown, ", "))
	}

	if err := validateOptionalDate("end date", endDate); err != nil {
		return models.Pod{}, err
	}

	pod := models.Pod{
		Name:      strings.TrimSpace(name),
		Type:      podType,
		Members:   deduped,
		Expenses:  []models.SharedExpense{},
		CreatedAt: s.now().Format(models.TimestampLayout),
		EndDate:   endDate,
	}
	user.Pods = append(user.Pods, pod)

	if err := s.store.Save(db); err != nil {
		return models.Pod{}, err
	}
	slog.Debug("pod created", "username", username, "pod", pod.Name, "members", pod.Members)
	return pod, nil
}

// ActivePods returns pointers to the user's pods whose end date is absent,
// unparseable, or not in the past. Inactive pods stay in the record; they are
// only filtered from views.
func (s *PodService) ActivePods(db *models.Database, username string) ([]*models.Pod, error) {
	user, err := lookupUser(db, normalizeUsername(username))
	if err != nil {
		return nil, err
	}

	today := s.now().Format(models.DateLayout)
	var active []*models.Pod
	for i := range user.Pods {
		p := &user.Pods[i]
		if isActive(p.EndDate, today) {
			active = append(active, p)
		}
	}
	return active, nil
}

// isActive reports whether a pod with the given end date is still in scope on
// the given day. No end date, an unparseable one, or one not yet past all
// count as active; ISO dates compare correctly as strings.
func isActive(endDate, today string) bool {
	if endDate == "" {
		return true
	}
	if _, err := time.Parse(models.DateLayout, endDate); err != nil {
		return true
	}
	return endDate >= today
}

// SharedExpenseInput is one shared expense to record against a pod.
type SharedExpenseInput struct {
	Amount    float64
	Category  string
	Note      string
	SplitType string

	// Percentages is consulted for SplitPercentage: member -> 0..100.
	Percentages map[string]float64

	// Amounts is consulted for SplitCustom: member -> exact share.
	Amounts map[string]float64
}

// AddSharedExpense records a shared expense on the pod at the given index
// into the user's active pods, with the split computed by the chosen policy.
// Approvals start as pending for every member; no operation transitions them.
func (s *PodService) AddSharedExpense(db *models.Database, username string, podIndex int, in SharedExpenseInput) (models.SharedExpense, error) {
	username = normalizeUsername(username)
	user, err := lookupUser(db, username)
	if err != nil {
		return models.SharedExpense{}, err
	}

	active, err := s.ActivePods(db, username)
	if err != nil {
		return models.SharedExpense{}, err
	}
	if podIndex < 0 || podIndex >= len(active) {
		return models.SharedExpense{}, fmt.Errorf("%w: index %d", ErrPodNotFound, podIndex)
	}
	pod := active[podIndex]

	if in.Amount <= 0 {
		return models.SharedExpense{}, fmt.Errorf("%w: amount %.2f", ErrInvalidAmount, in.Amount)
	}
	if len(pod.Members) == 0 {
		return models.SharedExpense{}, ErrNoMembers
	}

	var shares map[string]float64
	switch in.SplitType {
	case SplitEqual:
		shares = split.Equally(in.Amount, pod.Members)
	case SplitPercentage:
		if err := coversMembers(pod.Members, in.Percentages); err != nil {
			return models.SharedExpense{}, err
		}
		shares, err = split.ByPercentage(in.Amount, in.Percentages)
		if err != nil {
			return models.SharedExpense{}, err
		}
	case SplitCustom:
		if err := coversMembers(pod.Members, in.Amounts); err != nil {
			return models.SharedExpense{}, err
		}
		shares, err = split.ByCustomAmounts(in.Amount, in.Amounts)
		if err != nil {
			return models.SharedExpense{}, err
		}
	default:
		return models.SharedExpense{}, fmt.Errorf("%w: %q", ErrUnknownSplitType, in.SplitType)
	}

	approvals := make(map[string]string, len(pod.Members))
	for _, m := range pod.Members {
		approvals[m] = models.ApprovalPending
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = DefaultCategory
	}

	exp := models.SharedExpense{
		Amount:    round2(in.Amount),
		Category:  category,
		Note:      strings.TrimSpace(in.Note),
		Date:      s.now().Format(models.TimestampLayout),
		Split:     shares,
		Approvals: approvals,
	}
	pod.Expenses = append(pod.Expenses, exp)
	streak.Record(user, s.now())

	if err := s.store.Save(db); err != nil {
		return models.SharedExpense{}, err
	}
	slog.Debug("shared expense added", "username", username, "pod", pod.Name, "amount", exp.Amount, "split_type", in.SplitType)
	return exp, nil
}

// coversMembers checks that a per-member configuration has exactly one entry
// for every pod member.
func coversMembers(members []string, entries map[string]float64) error {
	if len(entries) != len(members) {
		return fmt.Errorf("%w: got %d entries for %d members", ErrIncompleteSplit, len(entries), len(members))
	}
	for _, m := range members {
		if _, ok := entries[m]; !ok {
			return fmt.Errorf("%w: no entry for %q", ErrIncompleteSplit, m)
		}
	}
	return nil
}
