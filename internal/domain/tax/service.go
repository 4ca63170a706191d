package tax

import (
	"context"
	"time"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListYears(ctx context.Context) ([]Year, error) {
	return s.store.ListYears(ctx)
}

func (s *Service) YearByID(ctx context.Context, yearID int64) (Year, error) {
	return s.store.YearByID(ctx, yearID)
}

func (s *Service) LockedYearForDate(ctx context.Context, date time.Time) (Year, error) {
	return s.store.LockedYearForDate(ctx, date)
}

func (s *Service) BracketsForYear(ctx context.Context, yearID int64) ([]Bracket, error) {
	return s.store.BracketsForYear(ctx, yearID)
}

func (s *Service) CreateYear(ctx context.Context, year Year, brackets []Bracket) (int64, error) {
	return s.store.CreateYear(ctx, year, brackets)
}

func (s *Service) SetLocked(ctx context.Context, yearID int64, locked bool) error {
	return s.store.SetLocked(ctx, yearID, locked)
}

// ComputeForYear loads a tax year with its bracket table and computes the
// per-period PAYE amount for the given periodic gross.
func (s *Service) ComputeForYear(ctx context.Context, periodicGross float64, yearID int64) (float64, error) {
	year, err := s.store.YearByID(ctx, yearID)
	if err != nil {
		return 0, err
	}
	brackets, err := s.store.BracketsForYear(ctx, yearID)
	if err != nil {
		return 0, err
	}
	return Compute(periodicGross, year, brackets)
}
