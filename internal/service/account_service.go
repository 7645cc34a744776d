package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bondi-app/bondi/internal/auth"
	"github.com/bondi-app/bondi/internal/models"
	"github.com/bondi-app/bondi/internal/ordering"
	"github.com/bondi-app/bondi/internal/store"
)

var (
	ErrUsernameTaken    = errors.New("username already exists")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrWrongRecovery    = errors.New("recovery answer is incorrect")
)

// AccountService handles signup, login, and credential recovery.
type AccountService struct {
	store    *store.Store
	sessions *auth.SessionManager
}

// NewAccountService creates an AccountService over the given store and
// session manager.
func NewAccountService(st *store.Store, sessions *auth.SessionManager) *AccountService {
	return &AccountService{store: st, sessions: sessions}
}

// SignupInput is the raw signup form. The service normalizes identifiers
// itself; callers do not have to pre-trim.
type SignupInput struct {
	Username       string
	FullName       string
	Email          string
	Password       string
	PasswordRepeat string
	RecoveryAnswer string
}

// Signup validates the input, creates the user record, and persists it.
func (s *AccountService) Signup(db *models.Database, in SignupInput) error {
	username := normalizeUsername(in.Username)

	for _, f := range []struct{ name, value string }{
		{"full name", in.FullName},
		{"email", in.Email},
		{"username", username},
		{"password", in.Password},
		{"recovery answer", in.RecoveryAnswer},
	} {
		if err := requireField(f.name, f.value); err != nil {
			return err
		}
	}

	if _, exists := db.Users[username]; exists {
		return fmt.Errorf("%w: %q", ErrUsernameTaken, username)
	}
	if in.Password != in.PasswordRepeat {
		return ErrPasswordMismatch
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return err
	}

	passwordHash, err := auth.HashSecret(in.Password)
	if err != nil {
		return err
	}
	recoveryHash, err := auth.HashSecret(strings.ToLower(strings.TrimSpace(in.RecoveryAnswer)))
	if err != nil {
		return err
	}

	db.Users[username] = &models.User{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: passwordHash,
		RecoveryHash: recoveryHash,
		Goals:        []models.Goal{},
		Expenses:     []models.Expense{},
		Pods:         []models.Pod{},
	}

	if err := s.store.Save(db); err != nil {
		return err
	}
	slog.Info("account created", "username", username)
	return nil
}

// Login checks that the username exists (binary search over the sorted
// directory) and that the password matches, then issues a session token.
func (s *AccountService) Login(db *models.Database, username, password string) (string, error) {
	username = normalizeUsername(username)

	sorted := ordering.Usernames(db)
	if !ordering.SearchUsername(sorted, username) {
		return "", fmt.Errorf("%w: %q", ErrUserNotFound, username)
	}

	user := db.Users[username]
	if !auth.CheckSecret(user.PasswordHash, password) {
		return "", auth.ErrInvalidCredentials
	}
	user.EnsureShape()

	token, err := s.sessions.Issue(username)
	if err != nil {
		return "", err
	}
	slog.Info("login", "username", username)
	return token, nil
}

// RecoverUsernames returns every username whose email and recovery answer
// match, in ascending order. An empty result is not an error.
func (s *AccountService) RecoverUsernames(db *models.Database, email, answer string) []string {
	email = strings.TrimSpace(email)
	answer = strings.ToLower(strings.TrimSpace(answer))

	var found []string
	for _, username := range ordering.Usernames(db) {
		user := db.Users[username]
		if strings.EqualFold(user.Email, email) && auth.CheckSecret(user.RecoveryHash, answer) {
			found = append(found, username)
		}
	}
	return found
}

// ResetPassword replaces a user's password after checking the recovery
// answer.
func (s *AccountService) ResetPassword(db *models.Database, username, answer, newPassword string) error {
	username = normalizeUsername(username)
	user, err := lookupUser(db, username)
	if err != nil {
		return err
	}

	if !auth.CheckSecret(user.RecoveryHash, strings.ToLower(strings.TrimSpace(answer))) {
		return ErrWrongRecovery
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := auth.HashSecret(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := s.store.Save(db); err != nil {
		return err
	}
	slog.Info("password reset", "username", username)
	return nil
}
