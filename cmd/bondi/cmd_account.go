package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bondi-app/bondi/internal/service"
)

func newSignupCmd() *cobra.Command {
	var (
		username string
		fullName string
		email    string
		password string
		recovery string
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			db, err := a.store.Load()
			if err != nil {
				return err
			}

			pw := password
			repeat := password
			if pw == "" {
				if pw, err = readSecret("Password: "); err != nil {
					return err
				}
				if repeat, err = readSecret("Repeat password: "); err != nil {
					return err
				}
			}
			answer, err := secretOrPrompt(recovery, "Recovery answer: ")
			if err != nil {
				return err
			}

			if err := a.accounts.Signup(db, service.SignupInput{
				Username:       username,
				FullName:       fullName,
				Email:          email,
				Password:       pw,
				PasswordRepeat: repeat,
				RecoveryAnswer: answer,
			}); err != nil {
				return err
			}

			fmt.Printf("Account created for %q. Log in with: bondi login --username %s\n",
				strings.ToLower(strings.TrimSpace(username)), strings.ToLower(strings.TrimSpace(username)))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Unique username (lowercased)")
	cmd.Flags().StringVar(&fullName, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	cmd.Flags().StringVar(&recovery, "recovery", "", "Recovery answer (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLoginCmd() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			db, err := a.store.Load()
			if err != nil {
				return err
			}

			pw, err := secretOrPrompt(password, "Password: ")
			if err != nil {
				return err
			}

			token, err := a.accounts.Login(db, username, pw)
			if err != nil {
				return err
			}
			if err := a.saveSession(token); err != nil {
				return err
			}

			user := db.Users[strings.ToLower(strings.TrimSpace(username))]
			fmt.Printf("Welcome back, %s. Streak: %d\n", user.FullName, user.Streak.Count)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.clearSession(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newRecoverUsernameCmd() *cobra.Command {
	var (
		email    string
		recovery string
	)

	cmd := &cobra.Command{
		Use:   "recover-username",
		Short: "Find usernames by email and recovery answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			db, err := a.store.Load()
			if err != nil {
				return err
			}

			answer, err := secretOrPrompt(recovery, "Recovery answer: ")
			if err != nil {
				return err
			}

			found := a.accounts.RecoverUsernames(db, email, answer)
			if len(found) == 0 {
				return fmt.Errorf("no username matched that email and recovery answer")
			}
			fmt.Println("Your username(s):")
			for _, name := range found {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email the account was created with")
	cmd.Flags().StringVar(&recovery, "recovery", "", "Recovery answer (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newResetPasswordCmd() *cobra.Command {
	var (
		username string
		recovery string
	)

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset a password using the recovery answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			db, err := a.store.Load()
			if err != nil {
				return err
			}

			answer, err := secretOrPrompt(recovery, "Recovery answer: ")
			if err != nil {
				return err
			}
			pw, err := readSecret("New password: ")
			if err != nil {
				return err
			}
			repeat, err := readSecret("Repeat new password: ")
			if err != nil {
				return err
			}
			if pw != repeat {
				return service.ErrPasswordMismatch
			}

			if err := a.accounts.ResetPassword(db, username, answer, pw); err != nil {
				return err
			}
			fmt.Println("Password updated. You can log in now.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&recovery, "recovery", "", "Recovery answer (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}
