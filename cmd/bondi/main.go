// Command bondi is the terminal front-end for the Bondï finance tracker:
// accounts, personal expenses, savings goals, pods with shared expenses, and
// the daily streak. All state lives in an encoded JSON database plus CSV
// exports under the data directory.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bondi-app/bondi/internal/auth"
	"github.com/bondi-app/bondi/internal/config"
	"github.com/bondi-app/bondi/internal/models"
	"github.com/bondi-app/bondi/internal/service"
	"github.com/bondi-app/bondi/internal/store"
	"github.com/bondi-app/bondi/pkg/logging"
)

// sessionFile holds the login token between invocations, inside the data dir.
const sessionFile = "session"

// app wires the store and services for every command.
type app struct {
	cfg      *config.Config
	store    *store.Store
	sessions *auth.SessionManager
	accounts *service.AccountService
	finance  *service.FinanceService
	pods     *service.PodService
}

func newApp() (*app, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.Setup(cfg.LogLevel)

	st, err := store.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	return &app{
		cfg:      cfg,
		store:    st,
		sessions: sessions,
		accounts: service.NewAccountService(st, sessions),
		finance:  service.NewFinanceService(st),
		pods:     service.NewPodService(st),
	}, nil
}

// currentUser resolves the logged-in username from the session file and
// checks it still exists in the database.
func (a *app) currentUser(db *models.Database) (string, error) {
	raw, err := os.ReadFile(a.store.Path(sessionFile))
	if errors.Is(err, os.ErrNotExist) {
		return "", auth.ErrMissingToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}

	username, err := a.sessions.Validate(string(raw))
	if err != nil {
		return "", err
	}
	if _, ok := db.Users[username]; !ok {
		return "", auth.ErrMissingToken
	}
	return username, nil
}

func (a *app) saveSession(token string) error {
	return os.WriteFile(a.store.Path(sessionFile), []byte(token), 0o600)
}

func (a *app) clearSession() error {
	err := os.Remove(a.store.Path(sessionFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "bondi",
		Short:         "Personal and shared finance tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSignupCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newRecoverUsernameCmd(),
		newResetPasswordCmd(),
		newExpenseCmd(),
		newGoalCmd(),
		newPodCmd(),
		newSharedCmd(),
		newStreakCmd(),
		newExportCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
