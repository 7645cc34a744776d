package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Create and fund savings goals",
	}
	cmd.AddCommand(newGoalCreateCmd(), newGoalSaveCmd(), newGoalListCmd())
	return cmd
}

func newGoalCreateCmd() *cobra.Command {
	var (
		name     string
		target   float64
		deadline string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a goal",
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

			goal, err := a.finance.CreateGoal(db, username, name, target, deadline)
			if err != nil {
				return err
			}
			fmt.Printf("Goal %q created, target $%.2f\n", goal.Name, goal.Target)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Goal name")
	cmd.Flags().Float64Var(&target, "target", 0, "Target amount")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Optional deadline (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newGoalSaveCmd() *cobra.Command {
	var (
		goalIndex int
		amount    float64
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Add a saving to a goal",
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

			goal, err := a.finance.AddSaving(db, username, goalIndex, amount)
			if err != nil {
				return err
			}
			fmt.Printf("Saved $%.2f toward %q: $%.2f of $%.2f (%.2f%%)\n",
				amount, goal.Name, goal.Saved, goal.Target, goal.Progress())
			return nil
		},
	}

	cmd.Flags().IntVar(&goalIndex, "goal", 0, "Goal index from 'goal list'")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount to add")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newGoalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals with progress",
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

			goals, err := a.finance.Goals(db, username)
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				fmt.Println("No goals yet. Create one to get started.")
				return nil
			}

			for i, g := range goals {
				deadline := g.Deadline
				if deadline == "" {
					deadline = "—"
				}
				fmt.Printf("[%d] %s: $%.2f of $%.2f (%.2f%%), deadline %s\n",
					i, g.Name, g.Saved, g.Target, g.Progress(), deadline)
			}
			return nil
		},
	}
}
