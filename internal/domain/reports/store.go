package reports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// There is no stored gross column; every aggregate recomputes gross from the
// hour fields and the snapshotted rate, treating nulls as zero. Tax is summed
// from the persisted tax_amount.
const grossExpr = `
    (COALESCE(pl.hours_wk1,0) + COALESCE(pl.hours_wk2,0)) * COALESCE(pl.rate_used,0)
    + COALESCE(pl.ot15_hours,0) * COALESCE(pl.rate_used,0) * 1.5
    + COALESCE(pl.ot20_hours,0) * COALESCE(pl.rate_used,0) * 2`

func (s *Store) MonthlyTotals(ctx context.Context, year int) ([]MonthTotal, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT EXTRACT(MONTH FROM pr.pay_date)::int AS month,
           SUM(`+grossExpr+`) AS gross,
           SUM(COALESCE(pl.tax_amount,0)) AS tax
    FROM payroll_lines pl
    JOIN pay_runs pr ON pl.pay_run_id = pr.id
    WHERE EXTRACT(YEAR FROM pr.pay_date) = $1
    GROUP BY 1
    ORDER BY 1
  `, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []MonthTotal
	for rows.Next() {
		var total MonthTotal
		if err := rows.Scan(&total.Month, &total.Gross, &total.Tax); err != nil {
			return nil, err
		}
		totals = append(totals, total)
	}
	return totals, rows.Err()
}

func (s *Store) EmployeeTotals(ctx context.Context, year int) ([]EmployeeYTD, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.full_name,
           SUM(`+grossExpr+`) AS gross,
           SUM(COALESCE(pl.tax_amount,0)) AS tax
    FROM payroll_lines pl
    JOIN pay_runs pr ON pl.pay_run_id = pr.id
    JOIN employees e ON pl.employee_id = e.id
    WHERE EXTRACT(YEAR FROM pr.pay_date) = $1
    GROUP BY e.id, e.full_name
    ORDER BY e.full_name
  `, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []EmployeeYTD{}
	for rows.Next() {
		var row EmployeeYTD
		if err := rows.Scan(&row.EmployeeID, &row.FullName, &row.TotalGross, &row.TotalTax); err != nil {
			return nil, err
		}
		employees = append(employees, row)
	}
	return employees, rows.Err()
}
