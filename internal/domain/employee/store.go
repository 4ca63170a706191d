package employee

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

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, full_name, COALESCE(employee_code, ''), COALESCE(id_number, ''), COALESCE(email, ''), hourly_rate, active
    FROM employees
    ORDER BY employee_code
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []Employee{}
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.FullName, &emp.EmployeeCode, &emp.IDNumber, &emp.Email, &emp.HourlyRate, &emp.Active); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) ByID(ctx context.Context, employeeID int64) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, full_name, COALESCE(employee_code, ''), COALESCE(id_number, ''), COALESCE(email, ''), hourly_rate, active
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&emp.ID, &emp.FullName, &emp.EmployeeCode, &emp.IDNumber, &emp.Email, &emp.HourlyRate, &emp.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return emp, err
}

func (s *Store) Create(ctx context.Context, emp Employee) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (full_name, employee_code, id_number, email, hourly_rate, active)
    VALUES ($1,$2,$3,$4,$5,TRUE)
    RETURNING id
  `, emp.FullName, emp.EmployeeCode, emp.IDNumber, emp.Email, emp.HourlyRate).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, emp Employee) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET full_name = $1, employee_code = $2, id_number = $3, email = $4, hourly_rate = $5
    WHERE id = $6
  `, emp.FullName, emp.EmployeeCode, emp.IDNumber, emp.Email, emp.HourlyRate, emp.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetActive(ctx context.Context, employeeID int64, active bool) error {
	tag, err := s.DB.Exec(ctx, "UPDATE employees SET active = $1 WHERE id = $2", active, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
