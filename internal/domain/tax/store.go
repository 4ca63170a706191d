package tax

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const yearColumns = `id, label, frequency, start_date, end_date,
    primary_rebate, secondary_rebate, tertiary_rebate, locked`

func scanYear(row pgx.Row) (Year, error) {
	var year Year
	err := row.Scan(&year.ID, &year.Label, &year.Frequency, &year.StartDate, &year.EndDate,
		&year.PrimaryRebate, &year.SecondaryRebate, &year.TertiaryRebate, &year.Locked)
	return year, err
}

func (s *Store) ListYears(ctx context.Context) ([]Year, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+yearColumns+`
    FROM tax_years
    ORDER BY start_date DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	years := []Year{}
	for rows.Next() {
		year, err := scanYear(rows)
		if err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	return years, rows.Err()
}

func (s *Store) YearByID(ctx context.Context, yearID int64) (Year, error) {
	year, err := scanYear(s.DB.QueryRow(ctx, `
    SELECT `+yearColumns+`
    FROM tax_years
    WHERE id = $1
  `, yearID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Year{}, ErrYearNotFound
	}
	return year, err
}

// LockedYearForDate returns the single locked tax year whose date range
// contains the given date. ErrNoTaxYear when none matches.
func (s *Store) LockedYearForDate(ctx context.Context, date time.Time) (Year, error) {
	year, err := scanYear(s.DB.QueryRow(ctx, `
    SELECT `+yearColumns+`
    FROM tax_years
    WHERE locked = TRUE AND start_date <= $1 AND end_date >= $1
    ORDER BY start_date
    LIMIT 1
  `, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return Year{}, ErrNoTaxYear
	}
	return year, err
}

func (s *Store) BracketsForYear(ctx context.Context, yearID int64) ([]Bracket, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, tax_year_id, min_income, max_income, base_tax, marginal_rate
    FROM tax_brackets
    WHERE tax_year_id = $1
    ORDER BY min_income
  `, yearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brackets := []Bracket{}
	for rows.Next() {
		var bracket Bracket
		if err := rows.Scan(&bracket.ID, &bracket.TaxYearID, &bracket.MinIncome, &bracket.MaxIncome, &bracket.BaseTax, &bracket.MarginalRate); err != nil {
			return nil, err
		}
		brackets = append(brackets, bracket)
	}
	return brackets, rows.Err()
}

// CreateYear inserts a tax year and its bracket table in one transaction.
// A locked year may not overlap another locked year's date range.
func (s *Store) CreateYear(ctx context.Context, year Year, brackets []Bracket) (int64, error) {
	if err := ValidateBrackets(brackets); err != nil {
		return 0, err
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if year.Locked {
		overlap, err := lockedOverlapExists(ctx, tx, year.StartDate, year.EndDate, 0)
		if err != nil {
			return 0, err
		}
		if overlap {
			return 0, ErrLockedOverlap
		}
	}

	var yearID int64
	if err := tx.QueryRow(ctx, `
    INSERT INTO tax_years (label, frequency, start_date, end_date, primary_rebate, secondary_rebate, tertiary_rebate, locked)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, year.Label, year.Frequency, year.StartDate, year.EndDate,
		year.PrimaryRebate, year.SecondaryRebate, year.TertiaryRebate, year.Locked).Scan(&yearID); err != nil {
		return 0, err
	}

	for _, bracket := range brackets {
		if _, err := tx.Exec(ctx, `
      INSERT INTO tax_brackets (tax_year_id, min_income, max_income, base_tax, marginal_rate)
      VALUES ($1,$2,$3,$4,$5)
    `, yearID, bracket.MinIncome, bracket.MaxIncome, bracket.BaseTax, bracket.MarginalRate); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return yearID, nil
}

// SetLocked toggles a year's lock. Locking fails when another locked year
// already covers part of the same period.
func (s *Store) SetLocked(ctx context.Context, yearID int64, locked bool) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	year, err := scanYear(tx.QueryRow(ctx, `
    SELECT `+yearColumns+`
    FROM tax_years
    WHERE id = $1
  `, yearID))
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrYearNotFound
	}
	if err != nil {
		return err
	}

	if locked {
		overlap, err := lockedOverlapExists(ctx, tx, year.StartDate, year.EndDate, yearID)
		if err != nil {
			return err
		}
		if overlap {
			return ErrLockedOverlap
		}
	}

	if _, err := tx.Exec(ctx, "UPDATE tax_years SET locked = $1 WHERE id = $2", locked, yearID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func lockedOverlapExists(ctx context.Context, tx pgx.Tx, start, end time.Time, excludeID int64) (bool, error) {
	var count int
	err := tx.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM tax_years
    WHERE locked = TRUE AND id <> $1 AND start_date <= $2 AND end_date >= $3
  `, excludeID, end, start).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
