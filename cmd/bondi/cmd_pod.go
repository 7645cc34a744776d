package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bondi-app/bondi/internal/service"
)

func newPodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pod",
		Short: "Create and list shared expense pods",
	}
	cmd.AddCommand(newPodCreateCmd(), newPodListCmd())
	return cmd
}

func newPodCreateCmd() *cobra.Command {
	var (
		name        string
		podType     string
		members     []string
		includeSelf bool
		endDate     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a pod",
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

			pod, err := a.pods.CreatePod(db, username, name, podType, members, includeSelf, endDate)
			if err != nil {
				return err
			}
			fmt.Printf("Pod %q created with members: %s\n", pod.Name, strings.Join(pod.Members, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Pod name")
	cmd.Flags().StringVar(&podType, "type", "", "Pod type: ongoing or temporary (defaults to ongoing)")
	cmd.Flags().StringSliceVar(&members, "member", nil, "Member username (repeatable)")
	cmd.Flags().BoolVar(&includeSelf, "include-self", true, "Include yourself in the pod")
	cmd.Flags().StringVar(&endDate, "end", "", "Optional end date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPodListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active pods",
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

			active, err := a.pods.ActivePods(db, username)
			if err != nil {
				return err
			}
			if len(active) == 0 {
				fmt.Println("No active pods.")
				return nil
			}

			for i, p := range active {
				end := p.EndDate
				if end == "" {
					end = "—"
				}
				fmt.Printf("[%d] %s (%s), members: %s, ends: %s\n",
					i, p.Name, p.Type, strings.Join(p.Members, ", "), end)
			}
			return nil
		},
	}
}

func newSharedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shared",
		Short: "Record and list shared expenses",
	}
	cmd.AddCommand(newSharedAddCmd(), newSharedListCmd())
	return cmd
}

func newSharedAddCmd() *cobra.Command {
	var (
		podIndex  int
		amount    float64
		category  string
		note      string
		splitType string
		shares    []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a shared expense to a pod",
		Long: `Add a shared expense to a pod.

The split type decides how --share is used:
  equal        shares are computed, --share is ignored
  percentage   one --share member=pct per pod member, summing to 100
  custom       one --share member=amount per pod member, summing to the total`,
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

			parsed, err := parseShares(shares)
			if err != nil {
				return err
			}

			in := service.SharedExpenseInput{
				Amount:    amount,
				Category:  category,
				Note:      note,
				SplitType: splitType,
			}
			switch splitType {
			case service.SplitPercentage:
				in.Percentages = parsed
			case service.SplitCustom:
				in.Amounts = parsed
			}

			exp, err := a.pods.AddSharedExpense(db, username, podIndex, in)
			if err != nil {
				return err
			}

			fmt.Printf("Shared expense of $%.2f recorded:\n", exp.Amount)
			members := make([]string, 0, len(exp.Split))
			for m := range exp.Split {
				members = append(members, m)
			}
			slices.Sort(members)
			for _, m := range members {
				fmt.Printf("  %s: $%.2f (%s)\n", m, exp.Split[m], exp.Approvals[m])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&podIndex, "pod", 0, "Pod index from 'pod list'")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Total amount")
	cmd.Flags().StringVar(&category, "category", "", "Category (defaults to General)")
	cmd.Flags().StringVar(&note, "note", "", "Free-text note")
	cmd.Flags().StringVar(&splitType, "split", service.SplitEqual, "Split type: equal, percentage, or custom")
	cmd.Flags().StringArrayVar(&shares, "share", nil, "Per-member share as member=value (repeatable)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newSharedListCmd() *cobra.Command {
	var podIndex int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a pod's shared expenses",
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

			active, err := a.pods.ActivePods(db, username)
			if err != nil {
				return err
			}
			if podIndex < 0 || podIndex >= len(active) {
				return fmt.Errorf("%w: index %d", service.ErrPodNotFound, podIndex)
			}
			pod := active[podIndex]

			if len(pod.Expenses) == 0 {
				fmt.Printf("No shared expenses in %q yet.\n", pod.Name)
				return nil
			}
			for _, e := range pod.Expenses {
				var parts []string
				for _, member := range pod.Members {
					if share, ok := e.Split[member]; ok {
						parts = append(parts, fmt.Sprintf("%s: $%.2f", member, share))
					}
				}
				fmt.Printf("%s  $%8.2f  %-12s  %s  [%s]\n",
					e.Date, e.Amount, e.Category, e.Note, strings.Join(parts, ", "))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&podIndex, "pod", 0, "Pod index from 'pod list'")

	return cmd
}
