package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) All(ctx context.Context) (map[string]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := map[string]string{}
	for key, value := range defaults {
		values[key] = value
	}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, rows.Err()
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.DB.QueryRow(ctx, "SELECT value FROM settings WHERE key = $1", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		if fallback, ok := defaults[key]; ok {
			return fallback, nil
		}
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetWithTaxReset upserts a setting and, when resetLineTax is true, zeroes the
// stored tax_amount on every payroll line in the same transaction. Returns the
// number of lines reset.
func (s *Store) SetWithTaxReset(ctx context.Context, key, value string, resetLineTax bool) (int64, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
    INSERT INTO settings (key, value)
    VALUES ($1,$2)
    ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
  `, key, value); err != nil {
		return 0, err
	}

	var linesReset int64
	if resetLineTax {
		tag, err := tx.Exec(ctx, "UPDATE payroll_lines SET tax_amount = 0")
		if err != nil {
			return 0, err
		}
		linesReset = tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return linesReset, nil
}
