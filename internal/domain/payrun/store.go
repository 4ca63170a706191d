package payrun

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

func (s *Store) ListRuns(ctx context.Context, year int) ([]Run, error) {
	query := `
    SELECT id, tax_year_id, period_start, period_end, pay_date, created_at
    FROM pay_runs
  `
	var args []any
	if year > 0 {
		query += " WHERE EXTRACT(YEAR FROM pay_date) = $1"
		args = append(args, year)
	}
	query += " ORDER BY pay_date DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.TaxYearID, &run.PeriodStart, &run.PeriodEnd, &run.PayDate, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *Store) RunByID(ctx context.Context, runID int64) (Run, error) {
	var run Run
	err := s.DB.QueryRow(ctx, `
    SELECT id, tax_year_id, period_start, period_end, pay_date, created_at
    FROM pay_runs
    WHERE id = $1
  `, runID).Scan(&run.ID, &run.TaxYearID, &run.PeriodStart, &run.PeriodEnd, &run.PayDate, &run.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	return run, err
}

// CreateRun binds the run to the single locked tax year covering the pay date
// and snapshots every active employee into a line at their current hourly
// rate, all in one transaction. Returns the run id and the number of lines
// seeded. ErrNoTaxYearConfigured aborts the whole operation.
func (s *Store) CreateRun(ctx context.Context, periodStart, periodEnd, payDate time.Time) (int64, int, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback(ctx)

	var taxYearID int64
	err = tx.QueryRow(ctx, `
    SELECT id
    FROM tax_years
    WHERE locked = TRUE AND start_date <= $1 AND end_date >= $1
    ORDER BY start_date
    LIMIT 1
  `, payDate).Scan(&taxYearID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, ErrNoTaxYearConfigured
	}
	if err != nil {
		return 0, 0, err
	}

	var runID int64
	if err := tx.QueryRow(ctx, `
    INSERT INTO pay_runs (tax_year_id, period_start, period_end, pay_date)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, taxYearID, periodStart, periodEnd, payDate).Scan(&runID); err != nil {
		return 0, 0, err
	}

	tag, err := tx.Exec(ctx, `
    INSERT INTO payroll_lines (pay_run_id, employee_id, rate_used)
    SELECT $1, id, hourly_rate
    FROM employees
    WHERE active = TRUE
  `, runID)
	if err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, err
	}
	return runID, int(tag.RowsAffected()), nil
}

// AddMissingEmployees inserts a line for every active employee the run does
// not cover yet. Idempotent: a second call with an unchanged roster adds
// nothing. The UNIQUE(pay_run_id, employee_id) constraint backs the anti-join.
func (s *Store) AddMissingEmployees(ctx context.Context, runID int64) (int, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM pay_runs WHERE id = $1)", runID).Scan(&exists); err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrRunNotFound
	}

	tag, err := tx.Exec(ctx, `
    INSERT INTO payroll_lines (pay_run_id, employee_id, rate_used)
    SELECT $1, e.id, e.hourly_rate
    FROM employees e
    WHERE e.active = TRUE
      AND NOT EXISTS (
        SELECT 1 FROM payroll_lines pl
        WHERE pl.pay_run_id = $1 AND pl.employee_id = e.id
      )
    ON CONFLICT (pay_run_id, employee_id) DO NOTHING
  `, runID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (s *Store) UpdateRunDates(ctx context.Context, runID int64, patch RunPatch) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE pay_runs
    SET period_start = COALESCE($1, period_start),
        period_end = COALESCE($2, period_end),
        pay_date = COALESCE($3, pay_date)
    WHERE id = $4
  `, patch.PeriodStart, patch.PeriodEnd, patch.PayDate, runID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRunNotFound
	}
	return nil
}

// DeleteRun cascades through deductions and lines before removing the run.
func (s *Store) DeleteRun(ctx context.Context, runID int64) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
    DELETE FROM deductions
    WHERE payroll_line_id IN (SELECT id FROM payroll_lines WHERE pay_run_id = $1)
  `, runID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM payroll_lines WHERE pay_run_id = $1", runID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, "DELETE FROM pay_runs WHERE id = $1", runID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRunNotFound
	}
	return tx.Commit(ctx)
}

const lineColumns = `pl.id, pl.pay_run_id, pl.employee_id,
    COALESCE(pl.hours_wk1, 0), COALESCE(pl.hours_wk2, 0),
    COALESCE(pl.ot15_hours, 0), COALESCE(pl.ot20_hours, 0),
    COALESCE(pl.rate_used, 0), COALESCE(pl.tax_amount, 0),
    pr.tax_year_id, e.full_name, COALESCE(e.employee_code, '')`

func scanLine(row pgx.Row) (Line, error) {
	var line Line
	err := row.Scan(&line.ID, &line.PayRunID, &line.EmployeeID,
		&line.HoursWk1, &line.HoursWk2, &line.OT15Hours, &line.OT20Hours,
		&line.RateUsed, &line.TaxAmount, &line.TaxYearID, &line.FullName, &line.EmployeeCode)
	return line, err
}

func (s *Store) ListLines(ctx context.Context, runID int64) ([]Line, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+lineColumns+`
    FROM payroll_lines pl
    JOIN employees e ON pl.employee_id = e.id
    JOIN pay_runs pr ON pl.pay_run_id = pr.id
    WHERE pl.pay_run_id = $1
    ORDER BY e.employee_code
  `, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []Line{}
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (s *Store) LineByID(ctx context.Context, lineID int64) (Line, error) {
	line, err := scanLine(s.DB.QueryRow(ctx, `
    SELECT `+lineColumns+`
    FROM payroll_lines pl
    JOIN employees e ON pl.employee_id = e.id
    JOIN pay_runs pr ON pl.pay_run_id = pr.id
    WHERE pl.id = $1
  `, lineID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Line{}, ErrLineNotFound
	}
	return line, err
}

// UpdateLineHours persists the four hour fields and the recomputed tax amount
// together so reads never see a stale pairing.
func (s *Store) UpdateLineHours(ctx context.Context, lineID int64, hours Hours, tax float64) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE payroll_lines
    SET hours_wk1 = $1, hours_wk2 = $2, ot15_hours = $3, ot20_hours = $4, tax_amount = $5
    WHERE id = $6
  `, hours.Wk1, hours.Wk2, hours.OT15, hours.OT20, tax, lineID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (s *Store) ListDeductions(ctx context.Context, lineID int64) ([]Deduction, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, payroll_line_id, description, amount
    FROM deductions
    WHERE payroll_line_id = $1
    ORDER BY id
  `, lineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deductions := []Deduction{}
	for rows.Next() {
		var deduction Deduction
		if err := rows.Scan(&deduction.ID, &deduction.PayrollLineID, &deduction.Description, &deduction.Amount); err != nil {
			return nil, err
		}
		deductions = append(deductions, deduction)
	}
	return deductions, rows.Err()
}

func (s *Store) DeductionTotal(ctx context.Context, lineID int64) (float64, error) {
	var total float64
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(amount), 0)
    FROM deductions
    WHERE payroll_line_id = $1
  `, lineID).Scan(&total)
	return total, err
}

func (s *Store) AddDeduction(ctx context.Context, deduction Deduction) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO deductions (payroll_line_id, description, amount)
    VALUES ($1,$2,$3)
    RETURNING id
  `, deduction.PayrollLineID, deduction.Description, deduction.Amount).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) DeleteDeduction(ctx context.Context, deductionID int64) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM deductions WHERE id = $1", deductionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDeductionNotFound
	}
	return nil
}

func (s *Store) PayslipRow(ctx context.Context, lineID int64) (PayslipData, error) {
	var data PayslipData
	err := s.DB.QueryRow(ctx, `
    SELECT `+lineColumns+`,
           COALESCE(e.id_number, ''), COALESCE(e.email, ''),
           pr.period_start, pr.period_end, pr.pay_date
    FROM payroll_lines pl
    JOIN employees e ON pl.employee_id = e.id
    JOIN pay_runs pr ON pl.pay_run_id = pr.id
    WHERE pl.id = $1
  `, lineID).Scan(&data.Line.ID, &data.Line.PayRunID, &data.Line.EmployeeID,
		&data.Line.HoursWk1, &data.Line.HoursWk2, &data.Line.OT15Hours, &data.Line.OT20Hours,
		&data.Line.RateUsed, &data.Line.TaxAmount, &data.Line.TaxYearID,
		&data.Line.FullName, &data.Line.EmployeeCode,
		&data.IDNumber, &data.Email,
		&data.PeriodStart, &data.PeriodEnd, &data.PayDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return PayslipData{}, ErrLineNotFound
	}
	if err != nil {
		return PayslipData{}, err
	}

	data.Deductions, err = s.ListDeductions(ctx, lineID)
	if err != nil {
		return PayslipData{}, err
	}
	return data, nil
}
