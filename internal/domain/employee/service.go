package employee

import (
	"context"
	"strings"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.store.List(ctx)
}

func (s *Service) ByID(ctx context.Context, employeeID int64) (Employee, error) {
	return s.store.ByID(ctx, employeeID)
}

func (s *Service) Create(ctx context.Context, emp Employee) (int64, error) {
	if err := validate(emp); err != nil {
		return 0, err
	}
	return s.store.Create(ctx, emp)
}

func (s *Service) Update(ctx context.Context, emp Employee) error {
	if err := validate(emp); err != nil {
		return err
	}
	return s.store.Update(ctx, emp)
}

// Deactivate retires an employee from future pay runs. Existing payroll lines
// keep referencing the employee so historical runs stay intact.
func (s *Service) Deactivate(ctx context.Context, employeeID int64) error {
	return s.store.SetActive(ctx, employeeID, false)
}

func (s *Service) Reactivate(ctx context.Context, employeeID int64) error {
	return s.store.SetActive(ctx, employeeID, true)
}

func validate(emp Employee) error {
	if strings.TrimSpace(emp.FullName) == "" {
		return ErrNameRequired
	}
	if emp.HourlyRate < 0 {
		return ErrNegativeRate
	}
	return nil
}
