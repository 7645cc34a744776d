// Package ordering holds the sort and lookup helpers that keep user and
// expense listings deterministic everywhere they appear: exports, views, and
// the pre-authentication username check all present the same order.
package ordering

import (
	"slices"

	"github.com/bondi-app/bondi/internal/models"
)

// Usernames returns every username in the database in ascending order.
func Usernames(db *models.Database) []string {
	names := make([]string, 0, len(db.Users))
	for name := range db.Users {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SearchUsername reports whether name is present in an ascending-sorted
// username list, by binary search.
func SearchUsername(sorted []string, name string) bool {
	_, found := slices.BinarySearch(sorted, name)
	return found
}

// ByAmountDesc returns the expenses sorted by amount, highest first. The sort
// is stable: equal amounts keep their original relative order.
func ByAmountDesc(expenses []models.Expense) []models.Expense {
	out := slices.Clone(expenses)
	slices.SortStableFunc(out, func(a, b models.Expense) int {
		switch {
		case a.Amount > b.Amount:
			return -1
		case a.Amount < b.Amount:
			return 1
		default:
			return 0
		}
	})
	return out
}
