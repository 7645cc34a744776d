package store

import (
	"encoding/csv"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bondi-app/bondi/internal/codec"
	"github.com/bondi-app/bondi/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func sampleDatabase() *models.Database {
	db := models.NewDatabase()
	last := "2025-03-14"
	db.Users["ana"] = &models.User{
		FullName:     "Ana García",
		Email:        "ana@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		RecoveryHash: "$2a$10$vutsrqponmlkjihgfedcba",
		Expenses: []models.Expense{
			{Amount: 12.5, Category: "food", Note: "market run", Date: "2025-03-14 09:26"},
		},
		Goals: []models.Goal{
			{Name: "Trip", Target: 500.0, Saved: 120.0, Deadline: "2025-12-01", CreatedAt: "2025-03-01 10:00"},
		},
		Pods: []models.Pod{
			{
				Name:      "flatmates",
				Type:      models.PodTypeOngoing,
				Members:   []string{"ana", "ben"},
				CreatedAt: "2025-03-02 18:30",
				Expenses: []models.SharedExpense{
					{
						Amount:    30.0,
						Category:  "General",
						Note:      "dinner",
						Date:      "2025-03-14 20:11",
						Split:     map[string]float64{"ana": 15.0, "ben": 15.0},
						Approvals: map[string]string{"ana": "pending", "ben": "pending"},
					},
				},
			},
		},
		Streak: models.Streak{Count: 1, LastActiveOn: &last},
	}
	db.Users["ben"] = &models.User{
		FullName: "Ben Okafor",
		Email:    "ben@example.com",
	}
	return db
}

func TestLoadMissingFileReturnsEmptyDatabase(t *testing.T) {
	s := newTestStore(t)

	db, err := s.Load()
	require.NoError(t, err)
	assert.NotNil(t, db.Users)
	assert.Empty(t, db.Users)
}

func TestLoadMalformedFileFails(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(DatabaseFile), []byte("{not json"), 0o644))

	_, err := s.Load()
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleDatabase()))

	db, err := s.Load()
	require.NoError(t, err)

	ana, ok := db.Users["ana"]
	require.True(t, ok, "ana should survive the round trip")
	assert.Equal(t, "Ana García", ana.FullName)
	assert.Equal(t, "ana@example.com", ana.Email)
	assert.Equal(t, "$2a$10$abcdefghijklmnopqrstuv", ana.PasswordHash)

	require.Len(t, ana.Expenses, 1)
	assert.Equal(t, 12.5, ana.Expenses[0].Amount)
	assert.Equal(t, "food", ana.Expenses[0].Category)
	assert.Equal(t, "2025-03-14 09:26", ana.Expenses[0].Date)

	require.Len(t, ana.Goals, 1)
	assert.Equal(t, 500.0, ana.Goals[0].Target)
	assert.Equal(t, 120.0, ana.Goals[0].Saved)

	require.Len(t, ana.Pods, 1)
	pod := ana.Pods[0]
	assert.Equal(t, []string{"ana", "ben"}, pod.Members)
	require.Len(t, pod.Expenses, 1)
	assert.Equal(t, map[string]float64{"ana": 15.0, "ben": 15.0}, pod.Expenses[0].Split)
	assert.Equal(t, map[string]string{"ana": "pending", "ben": "pending"}, pod.Expenses[0].Approvals)

	assert.Equal(t, 1, ana.Streak.Count)
	require.NotNil(t, ana.Streak.LastActiveOn)
	assert.Equal(t, "2025-03-14", *ana.Streak.LastActiveOn)

	// ben has no collections in the file; the shape is backfilled on load.
	ben := db.Users["ben"]
	require.NotNil(t, ben)
	assert.NotNil(t, ben.Expenses)
	assert.Nil(t, ben.Streak.LastActiveOn)
}

func TestSavedFileIsEncoded(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleDatabase()))

	raw, err := os.ReadFile(s.Path(DatabaseFile))
	require.NoError(t, err)

	content := string(raw)
	// Field names stay readable; leaf values do not.
	assert.Contains(t, content, `"full_name"`)
	assert.Contains(t, content, `"ana"`)
	assert.NotContains(t, content, "Ana García")
	assert.NotContains(t, content, "market run")
	assert.Contains(t, content, codec.Encode("Ana García"))
}

func TestLoadLegacyUnencodedFile(t *testing.T) {
	s := newTestStore(t)
	legacy := `{
  "users": {
    "ana": {
      "full_name": "Ana",
      "email": "ana@example.com",
      "password_hash": "deadbeef",
      "recovery_hash": "deadbeef",
      "expenses": [{"amount": 12.5, "category": "food", "note": "", "date": "2024-01-02 08:00"}],
      "goals": [],
      "pods": [],
      "streak": {"count": 2, "last_active_on": "2024-01-02"}
    }
  }
}`
	require.NoError(t, os.WriteFile(s.Path(DatabaseFile), []byte(legacy), 0o644))

	db, err := s.Load()
	require.NoError(t, err)

	ana := db.Users["ana"]
	require.NotNil(t, ana)
	assert.Equal(t, "ana@example.com", ana.Email)
	assert.Equal(t, 12.5, ana.Expenses[0].Amount)
	assert.Equal(t, 2, ana.Streak.Count)
}

func TestExportsSortedAndEncoded(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleDatabase()))

	for _, name := range []string{UsersCSV, ExpensesCSV, GoalsCSV, PodsCSV, SharedExpensesCSV} {
		_, err := os.Stat(s.Path(name))
		assert.NoError(t, err, "%s should be regenerated on save", name)
	}

	f, err := os.Open(s.Path(UsersCSV))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per user")

	assert.Equal(t, []string{"username", "full_name", "email"}, records[0])

	// Rows are ordered by ascending username and every cell is encoded.
	first, err := codec.Decode(records[1][0])
	require.NoError(t, err)
	second, err := codec.Decode(records[2][0])
	require.NoError(t, err)
	assert.Equal(t, "ana", first)
	assert.Equal(t, "ben", second)

	name, err := codec.Decode(records[1][1])
	require.NoError(t, err)
	assert.Equal(t, "Ana García", name)
}

func TestSharedExpenseExportCells(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleDatabase()))

	f, err := os.Open(s.Path(SharedExpensesCSV))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	splitCell, err := codec.Decode(records[1][8])
	require.NoError(t, err)
	assert.JSONEq(t, `{"ana": 15, "ben": 15}`, splitCell)

	amountCell, err := codec.Decode(records[1][5])
	require.NoError(t, err)
	assert.Equal(t, "30.0", amountCell)
}
