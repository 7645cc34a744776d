package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExpenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record and list personal expenses",
	}
	cmd.AddCommand(newExpenseAddCmd(), newExpenseListCmd())
	return cmd
}

func newExpenseAddCmd() *cobra.Command {
	var (
		amount   float64
		category string
		note     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an expense",
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

			exp, err := a.finance.AddExpense(db, username, amount, category, note)
			if err != nil {
				return err
			}

			user := db.Users[username]
			fmt.Printf("Added $%.2f (%s). Streak: %d\n", exp.Amount, exp.Category, user.Streak.Count)
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount spent")
	cmd.Flags().StringVar(&category, "category", "", "Category (defaults to General)")
	cmd.Flags().StringVar(&note, "note", "", "Free-text note")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newExpenseListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List expenses, largest first",
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

			expenses, total, err := a.finance.ListExpenses(db, username)
			if err != nil {
				return err
			}
			if len(expenses) == 0 {
				fmt.Println("No expenses yet.")
				return nil
			}

			for _, e := range expenses {
				fmt.Printf("%s  $%8.2f  %-12s  %s\n", e.Date, e.Amount, e.Category, e.Note)
			}
			fmt.Printf("Total: $%.2f\n", total)
			return nil
		},
	}
}
