package reports

import (
	"context"

	"payday/internal/domain/payrun"
)

type Toggles interface {
	UIFEnabled(ctx context.Context) (bool, error)
}

type Service struct {
	store    *Store
	settings Toggles
}

func NewService(store *Store, settings Toggles) *Service {
	return &Service{store: store, settings: settings}
}

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Monthly returns one entry per calendar month of the given year, zero-filled
// for months without pay runs.
func (s *Service) Monthly(ctx context.Context, year int) ([]MonthSummary, error) {
	totals, err := s.store.MonthlyTotals(ctx, year)
	if err != nil {
		return nil, err
	}
	uifEnabled, err := s.settings.UIFEnabled(ctx)
	if err != nil {
		return nil, err
	}
	return buildMonthly(totals, uifEnabled), nil
}

// YTD sums gross, UIF and net per employee over every run paying out in the
// given year, plus the company-wide totals.
func (s *Service) YTD(ctx context.Context, year int) (YTDSummary, error) {
	employees, err := s.store.EmployeeTotals(ctx, year)
	if err != nil {
		return YTDSummary{}, err
	}
	uifEnabled, err := s.settings.UIFEnabled(ctx)
	if err != nil {
		return YTDSummary{}, err
	}
	return buildYTD(employees, uifEnabled), nil
}

// SARS returns the EMP201-style monthly declaration rows for the given year.
func (s *Service) SARS(ctx context.Context, year int) ([]SARSMonth, error) {
	totals, err := s.store.MonthlyTotals(ctx, year)
	if err != nil {
		return nil, err
	}
	uifEnabled, err := s.settings.UIFEnabled(ctx)
	if err != nil {
		return nil, err
	}
	return buildSARS(totals, uifEnabled), nil
}

func uifFor(gross float64, enabled bool) float64 {
	if !enabled {
		return 0
	}
	return gross * payrun.UIFRate
}

func buildMonthly(totals []MonthTotal, uifEnabled bool) []MonthSummary {
	byMonth := map[int]MonthTotal{}
	for _, total := range totals {
		byMonth[total.Month] = total
	}

	summaries := make([]MonthSummary, 12)
	for i := range summaries {
		total := byMonth[i+1]
		uif := uifFor(total.Gross, uifEnabled)
		summaries[i] = MonthSummary{
			Month: monthNames[i],
			Gross: total.Gross,
			UIF:   uif,
			Tax:   total.Tax,
			Net:   total.Gross - uif - total.Tax,
		}
	}
	return summaries
}

func buildYTD(employees []EmployeeYTD, uifEnabled bool) YTDSummary {
	summary := YTDSummary{Employees: make([]EmployeeYTD, 0, len(employees))}
	for _, row := range employees {
		row.TotalUIF = uifFor(row.TotalGross, uifEnabled)
		row.TotalNet = row.TotalGross - row.TotalUIF - row.TotalTax
		summary.Employees = append(summary.Employees, row)

		summary.TotalGross += row.TotalGross
		summary.TotalUIF += row.TotalUIF
		summary.TotalTax += row.TotalTax
		summary.TotalNet += row.TotalNet
	}
	return summary
}

func buildSARS(totals []MonthTotal, uifEnabled bool) []SARSMonth {
	byMonth := map[int]MonthTotal{}
	for _, total := range totals {
		byMonth[total.Month] = total
	}

	months := make([]SARSMonth, 12)
	for i := range months {
		total := byMonth[i+1]
		uif := uifFor(total.Gross, uifEnabled)
		months[i] = SARSMonth{
			Month:       monthNames[i],
			Gross:       total.Gross,
			PAYE:        total.Tax,
			UIFEmployee: uif,
			UIFEmployer: uif,
			TotalDue:    total.Tax + uif + uif,
		}
	}
	return months
}
