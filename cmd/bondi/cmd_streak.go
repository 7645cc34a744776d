package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bondi-app/bondi/internal/streak"
)

func newStreakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the daily activity streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			db, err := a.store.Load()
			if err != nil {
				return err
			}
			username, err := a.currentUser(db)
			if err != nil {
				return err
			}

			user := db.Users[username]
			lastActive := "—"
			if user.Streak.LastActiveOn != nil {
				lastActive = *user.Streak.LastActiveOn
			}
			fmt.Printf("Current streak: %d days (%s)\n", user.Streak.Count, streak.Badge(user.Streak.Count))
			fmt.Printf("Last activity: %s\n", lastActive)
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Rewrite the database file and CSV exports",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			db, err := a.store.Load()
			if err != nil {
				return err
			}
			if err := a.store.Save(db); err != nil {
				return err
			}
			fmt.Printf("Exports written to %s\n", a.cfg.DataDir)
			return nil
		},
	}
}
