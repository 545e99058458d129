package store

import (
	"context"
	"database/sql"
	"fmt"
)

const defaultSectionLimit = 100

func (s *Store) CreateSection(ctx context.Context, markup string) (Section, error) {
	now := nowDBString()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sections(markup, created_at, updated_at) VALUES (?, ?, ?)`,
		markup, now, now,
	)
	if err != nil {
		return Section{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Section{}, err
	}
	return s.GetSection(ctx, id)
}

func (s *Store) GetSection(ctx context.Context, id int64) (Section, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sectionSelectColumns+` FROM sections WHERE id = ?`, id)
	section, err := scanSection(row)
	if err != nil {
		return Section{}, wrapNotFound(fmt.Sprintf("section %d", id), err)
	}
	return section, nil
}

func (s *Store) ListSections(ctx context.Context, opts SectionListOptions) ([]Section, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSectionLimit
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+sectionSelectColumns+` FROM sections ORDER BY id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := make([]Section, 0)
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, rows.Err()
}

// UpdateSectionMarkup replaces the markup of a section.
func (s *Store) UpdateSectionMarkup(ctx context.Context, id int64, markup string) (Section, error) {
	return s.ModifySection(ctx, id, func(string) (string, error) {
		return markup, nil
	})
}

// ModifySection rewrites a section's markup inside one transaction. When
// edit returns an error the section is left untouched and the error is
// returned as is.
func (s *Store) ModifySection(ctx context.Context, id int64, edit func(markup string) (string, error)) (section Section, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Section{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var current string
	if err = tx.QueryRowContext(ctx, `SELECT markup FROM sections WHERE id = ?`, id).Scan(&current); err != nil {
		return Section{}, wrapNotFound(fmt.Sprintf("section %d", id), err)
	}

	next, err := edit(current)
	if err != nil {
		return Section{}, err
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE sections SET markup = ?, updated_at = ? WHERE id = ?`,
		next, nowDBString(), id,
	); err != nil {
		return Section{}, err
	}

	section, err = scanSection(tx.QueryRowContext(ctx, `SELECT `+sectionSelectColumns+` FROM sections WHERE id = ?`, id))
	if err != nil {
		return Section{}, err
	}
	if err = tx.Commit(); err != nil {
		return Section{}, err
	}
	return section, nil
}

func (s *Store) ClearSection(ctx context.Context, id int64) (Section, error) {
	return s.UpdateSectionMarkup(ctx, id, "")
}

func (s *Store) DeleteSection(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sections WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return wrapNotFound(fmt.Sprintf("section %d", id), sql.ErrNoRows)
	}
	return nil
}
