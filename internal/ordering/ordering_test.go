package ordering

import (
	"slices"
	"testing"

	"github.com/bondi-app/bondi/internal/models"
)

func TestUsernames(t *testing.T) {
	db := models.NewDatabase()
	for _, name := range []string{"zoe", "ana", "ben"} {
		db.Users[name] = &models.User{}
	}

	got := Usernames(db)
	want := []string{"ana", "ben", "zoe"}
	if !slices.Equal(got, want) {
		t.Errorf("Usernames() = %v, want %v", got, want)
	}
}

func TestSearchUsername(t *testing.T) {
	sorted := []string{"ana", "ben", "zoe"}

	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{name: "first", target: "ana", want: true},
		{name: "middle", target: "ben", want: true},
		{name: "last", target: "zoe", want: true},
		{name: "absent", target: "carl", want: false},
		{name: "empty target", target: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SearchUsername(sorted, tt.target); got != tt.want {
				t.Errorf("SearchUsername(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}

	if SearchUsername(nil, "ana") {
		t.Error("SearchUsername on empty list should report not found")
	}
}

func TestByAmountDesc(t *testing.T) {
	in := []models.Expense{
		{Amount: 5, Note: "first five"},
		{Amount: 20},
		{Amount: 5, Note: "second five"},
		{Amount: 12.5},
	}

	got := ByAmountDesc(in)

	amounts := make([]float64, len(got))
	for i, e := range got {
		amounts[i] = e.Amount
	}
	if !slices.Equal(amounts, []float64{20, 12.5, 5, 5}) {
		t.Fatalf("amounts = %v, want descending", amounts)
	}

	// Ties keep their original relative order.
	if got[2].Note != "first five" || got[3].Note != "second five" {
		t.Errorf("equal amounts reordered: %q before %q", got[2].Note, got[3].Note)
	}

	// Input must not be mutated.
	if in[0].Amount != 5 {
		t.Error("input slice was reordered in place")
	}
}
