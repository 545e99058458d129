package store

import (
	"database/sql"
	"time"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

const sectionSelectColumns = `id, markup, created_at, updated_at`

func scanSection(scanner rowScanner) (Section, error) {
	var s Section
	var createdAt, updatedAt string
	if err := scanner.Scan(&s.ID, &s.Markup, &createdAt, &updatedAt); err != nil {
		return Section{}, err
	}
	if t, err := parseDBTime(createdAt); err == nil {
		s.CreatedAt = t
	}
	if t, err := parseDBTime(updatedAt); err == nil {
		s.UpdatedAt = t
	}
	return s, nil
}

func nowDBString() string {
	now := time.Now()
	return timeToDBString(&now).(string)
}
