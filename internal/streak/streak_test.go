package streak

import (
	"testing"
	"time"

	"github.com/bondi-app/bondi/internal/models"
)

func day(s string) time.Time {
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRecord(t *testing.T) {
	tests := []struct {
		name     string
		days     []string
		wantN    int
		wantLast string
	}{
		{
			name:     "first activity starts at 1",
			days:     []string{"2025-03-10"},
			wantN:    1,
			wantLast: "2025-03-10",
		},
		{
			name:     "consecutive days increment",
			days:     []string{"2025-03-10", "2025-03-11"},
			wantN:    2,
			wantLast: "2025-03-11",
		},
		{
			name:     "three in a row",
			days:     []string{"2025-03-10", "2025-03-11", "2025-03-12"},
			wantN:    3,
			wantLast: "2025-03-12",
		},
		{
			name:     "gap resets to 1",
			days:     []string{"2025-03-10", "2025-03-11", "2025-03-13"},
			wantN:    1,
			wantLast: "2025-03-13",
		},
		{
			name:     "same day is a no-op",
			days:     []string{"2025-03-10", "2025-03-10"},
			wantN:    1,
			wantLast: "2025-03-10",
		},
		{
			name:     "backdated event resets",
			days:     []string{"2025-03-10", "2025-03-08"},
			wantN:    1,
			wantLast: "2025-03-08",
		},
		{
			name:     "month boundary still counts as consecutive",
			days:     []string{"2025-03-31", "2025-04-01"},
			wantN:    2,
			wantLast: "2025-04-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &models.User{}
			for _, d := range tt.days {
				Record(user, day(d))
			}
			if user.Streak.Count != tt.wantN {
				t.Errorf("count = %d, want %d", user.Streak.Count, tt.wantN)
			}
			if user.Streak.LastActiveOn == nil || *user.Streak.LastActiveOn != tt.wantLast {
				t.Errorf("last active = %v, want %q", user.Streak.LastActiveOn, tt.wantLast)
			}
		})
	}
}

func TestRecordSameDayIdempotent(t *testing.T) {
	once := &models.User{}
	Record(once, day("2025-03-10"))
	Record(once, day("2025-03-11"))

	twice := &models.User{}
	Record(twice, day("2025-03-10"))
	Record(twice, day("2025-03-11"))
	Record(twice, day("2025-03-11"))

	if once.Streak.Count != twice.Streak.Count {
		t.Errorf("count after repeat = %d, want %d", twice.Streak.Count, once.Streak.Count)
	}
	if *once.Streak.LastActiveOn != *twice.Streak.LastActiveOn {
		t.Errorf("last active after repeat = %q, want %q", *twice.Streak.LastActiveOn, *once.Streak.LastActiveOn)
	}
}

func TestRecordUnparseableStoredDateResets(t *testing.T) {
	bad := "not-a-date"
	user := &models.User{Streak: models.Streak{Count: 5, LastActiveOn: &bad}}

	Record(user, day("2025-03-10"))

	if user.Streak.Count != 1 {
		t.Errorf("count = %d, want reset to 1", user.Streak.Count)
	}
}

func TestBadge(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "—"},
		{1, "Day 1"},
		{2, "Day 1"},
		{3, "Getting Consistent"},
		{6, "Getting Consistent"},
		{7, "Streaker"},
		{13, "Streaker"},
		{14, "On Fire"},
		{29, "On Fire"},
		{30, "Legendary"},
		{100, "Legendary"},
	}

	for _, tt := range tests {
		if got := Badge(tt.count); got != tt.want {
			t.Errorf("Badge(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}
