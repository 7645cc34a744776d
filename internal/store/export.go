package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bondi-app/bondi/internal/codec"
	"github.com/bondi-app/bondi/internal/models"
	"github.com/bondi-app/bondi/internal/ordering"
)

// exportAll regenerates the five tabular exports from the unencoded database.
// Rows are ordered by ascending username; headers are written plain and every
// cell value is encoded independently, so the CSVs are self-contained and
// unreadable in the same way as the JSON file.
func (s *Store) exportAll(db *models.Database) error {
	sorted := ordering.Usernames(db)

	if err := s.exportUsers(db, sorted); err != nil {
		return err
	}
	if err := s.exportExpenses(db, sorted); err != nil {
		return err
	}
	if err := s.exportGoals(db, sorted); err != nil {
		return err
	}
	if err := s.exportPods(db, sorted); err != nil {
		return err
	}
	return s.exportSharedExpenses(db, sorted)
}

func (s *Store) exportUsers(db *models.Database, sorted []string) error {
	rows := make([][]string, 0, len(sorted))
	for _, username := range sorted {
		u := db.Users[username]
		rows = append(rows, []string{username, u.FullName, u.Email})
	}
	return s.writeCSV(UsersCSV, []string{"username", "full_name", "email"}, rows)
}

func (s *Store) exportExpenses(db *models.Database, sorted []string) error {
	var rows [][]string
	for _, username := range sorted {
		for _, e := range db.Users[username].Expenses {
			rows = append(rows, []string{
				username,
				e.Date,
				codec.FormatNumber(e.Amount),
				e.Category,
				e.Note,
			})
		}
	}
	return s.writeCSV(ExpensesCSV, []string{"username", "date", "amount", "category", "note"}, rows)
}

func (s *Store) exportGoals(db *models.Database, sorted []string) error {
	var rows [][]string
	for _, username := range sorted {
		for _, g := range db.Users[username].Goals {
			rows = append(rows, []string{
				username,
				g.Name,
				codec.FormatNumber(g.Target),
				codec.FormatNumber(g.Saved),
				g.Deadline,
				g.CreatedAt,
			})
		}
	}
	return s.writeCSV(GoalsCSV, []string{"username", "name", "target", "saved", "deadline", "created_at"}, rows)
}

func (s *Store) exportPods(db *models.Database, sorted []string) error {
	var rows [][]string
	for _, username := range sorted {
		for _, p := range db.Users[username].Pods {
			rows = append(rows, []string{
				username,
				p.Name,
				p.Type,
				strings.Join(p.Members, ", "),
				p.CreatedAt,
				p.EndDate,
			})
		}
	}
	return s.writeCSV(PodsCSV, []string{"username", "pod_name", "type", "members", "created_at", "end_date"}, rows)
}

func (s *Store) exportSharedExpenses(db *models.Database, sorted []string) error {
	var rows [][]string
	for _, username := range sorted {
		for _, p := range db.Users[username].Pods {
			members := strings.Join(p.Members, ", ")
			for _, e := range p.Expenses {
				splitJSON, err := json.Marshal(e.Split)
				if err != nil {
					return fmt.Errorf("failed to serialize split map: %w", err)
				}
				approvalsJSON, err := json.Marshal(e.Approvals)
				if err != nil {
					return fmt.Errorf("failed to serialize approvals map: %w", err)
				}
				rows = append(rows, []string{
					username,
					p.Name,
					p.Type,
					members,
					e.Date,
					codec.FormatNumber(e.Amount),
					e.Category,
					e.Note,
					string(splitJSON),
					string(approvalsJSON),
				})
			}
		}
	}
	header := []string{
		"username", "pod_name", "pod_type", "members",
		"date", "amount", "category", "note", "split", "approvals",
	}
	return s.writeCSV(SharedExpensesCSV, header, rows)
}

// writeCSV overwrites one export file: plain header, then each cell of each
// row passed through the codec.
func (s *Store) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(s.Path(name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = codec.Encode(cell)
		}
		if err := w.Write(encoded); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return f.Close()
}
