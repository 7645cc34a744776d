// Package store owns the durable database: a single code-point-encoded JSON
// file plus five CSV exports regenerated in full on every save. There is no
// caching, diffing, or partial persistence; the whole aggregate is rewritten
// after every mutation.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bondi-app/bondi/internal/codec"
	"github.com/bondi-app/bondi/internal/models"
)

// File names inside the data directory.
const (
	DatabaseFile      = "users_data.json"
	UsersCSV          = "users.csv"
	ExpensesCSV       = "expenses.csv"
	GoalsCSV          = "goals.csv"
	PodsCSV           = "pods.csv"
	SharedExpensesCSV = "shared_expenses.csv"
)

// Store reads and writes the database under one data directory.
type Store struct {
	dataDir string
}

// New creates the data directory if needed and returns a store over it.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dataDir: dataDir}, nil
}

// Path returns the location of a store file by name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dataDir, name)
}

// Load reads and decodes the database file. A missing file is not an error
// and yields an empty database; a malformed file is fatal to the caller,
// since there is no recovery path.
func (s *Store) Load() (*models.Database, error) {
	raw, err := os.ReadFile(s.Path(DatabaseFile))
	if errors.Is(err, os.ErrNotExist) {
		return models.NewDatabase(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read database: %w", err)
	}

	// Decode over the generic tree so legacy plain values survive; numbers
	// stay json.Number to keep their exact written form.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("failed to parse database: %w", err)
	}

	plain, err := json.Marshal(codec.DecodeStructure(tree))
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild database: %w", err)
	}

	db := models.NewDatabase()
	if err := json.Unmarshal(plain, db); err != nil {
		return nil, fmt.Errorf("failed to decode database: %w", err)
	}
	if db.Users == nil {
		db.Users = make(map[string]*models.User)
	}
	for _, u := range db.Users {
		u.EnsureShape()
	}
	return db, nil
}

// Save encodes the whole database, overwrites the database file, then
// regenerates every CSV export from the unencoded in-memory records.
func (s *Store) Save(db *models.Database) error {
	tree, err := toTree(db)
	if err != nil {
		return fmt.Errorf("failed to serialize database: %w", err)
	}

	out, err := json.MarshalIndent(codec.EncodeStructure(tree), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode database: %w", err)
	}
	if err := os.WriteFile(s.Path(DatabaseFile), out, 0o644); err != nil {
		return fmt.Errorf("failed to write database: %w", err)
	}

	return s.exportAll(db)
}

// toTree converts the typed database into the generic map/slice tree the
// structural encoder walks. UseNumber keeps amounts in their shortest form.
func toTree(db *models.Database) (any, error) {
	raw, err := json.Marshal(db)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	return tree, nil
}
