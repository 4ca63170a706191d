package settings

import (
	"context"
	"log/slog"
)

// Service is the single gate the calculators read toggles through. Disabling
// PAYE is destructive: the stored tax_amount of every existing payroll line is
// reset to zero along with the setting write. Historical figures are not
// recoverable by re-enabling the toggle.
type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) All(ctx context.Context) (map[string]string, error) {
	return s.store.All(ctx)
}

func (s *Service) Get(ctx context.Context, key string) (string, error) {
	return s.store.Get(ctx, key)
}

// Set writes a setting. Setting enable_paye to off triggers the bulk line-tax
// reset; the returned count is the number of lines whose tax was zeroed.
func (s *Service) Set(ctx context.Context, key, value string) (int64, error) {
	if IsBooleanKey(key) && value != ValueOn && value != ValueOff {
		return 0, ErrInvalidValue
	}
	resetLineTax := key == KeyEnablePAYE && !Enabled(value)

	linesReset, err := s.store.SetWithTaxReset(ctx, key, value, resetLineTax)
	if err != nil {
		return 0, err
	}
	if resetLineTax {
		slog.Info("paye disabled, stored line tax reset", "linesReset", linesReset)
	}
	return linesReset, nil
}

func (s *Service) PAYEEnabled(ctx context.Context) (bool, error) {
	value, err := s.store.Get(ctx, KeyEnablePAYE)
	if err != nil {
		return false, err
	}
	return Enabled(value), nil
}

func (s *Service) UIFEnabled(ctx context.Context) (bool, error) {
	value, err := s.store.Get(ctx, KeyEnableUIF)
	if err != nil {
		return false, err
	}
	return Enabled(value), nil
}
