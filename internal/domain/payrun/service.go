package payrun

import (
	"context"
	"strings"
	"time"
)

// TaxCalculator computes the per-period PAYE amount from a periodic gross and
// a tax year reference.
type TaxCalculator interface {
	ComputeForYear(ctx context.Context, periodicGross float64, yearID int64) (float64, error)
}

// Toggles exposes the settings gates the calculators honour.
type Toggles interface {
	PAYEEnabled(ctx context.Context) (bool, error)
	UIFEnabled(ctx context.Context) (bool, error)
	All(ctx context.Context) (map[string]string, error)
}

type Service struct {
	store    StoreAPI
	tax      TaxCalculator
	settings Toggles
}

func NewService(store StoreAPI, tax TaxCalculator, settings Toggles) *Service {
	return &Service{store: store, tax: tax, settings: settings}
}

func (s *Service) ListRuns(ctx context.Context, year int) ([]Run, error) {
	runs, err := s.store.ListRuns(ctx, year)
	if runs == nil {
		runs = []Run{}
	}
	return runs, err
}

func (s *Service) RunByID(ctx context.Context, runID int64) (Run, error) {
	return s.store.RunByID(ctx, runID)
}

// CreateRun validates the period and creates the run plus its seeded lines.
func (s *Service) CreateRun(ctx context.Context, periodStart, periodEnd, payDate time.Time) (int64, int, error) {
	if periodStart.IsZero() || periodEnd.IsZero() || payDate.IsZero() || periodEnd.Before(periodStart) {
		return 0, 0, ErrInvalidPeriod
	}
	return s.store.CreateRun(ctx, periodStart, periodEnd, payDate)
}

func (s *Service) AddMissingEmployees(ctx context.Context, runID int64) (int, error) {
	return s.store.AddMissingEmployees(ctx, runID)
}

// UpdateRunDates patches run dates. The patch is validated against the stored
// run so a one-sided update cannot leave the period inverted.
func (s *Service) UpdateRunDates(ctx context.Context, runID int64, patch RunPatch) error {
	run, err := s.store.RunByID(ctx, runID)
	if err != nil {
		return err
	}

	start, end := run.PeriodStart, run.PeriodEnd
	if patch.PeriodStart != nil {
		start = *patch.PeriodStart
	}
	if patch.PeriodEnd != nil {
		end = *patch.PeriodEnd
	}
	if end.Before(start) {
		return ErrInvalidPeriod
	}
	return s.store.UpdateRunDates(ctx, runID, patch)
}

func (s *Service) DeleteRun(ctx context.Context, runID int64) error {
	return s.store.DeleteRun(ctx, runID)
}

func (s *Service) ListLines(ctx context.Context, runID int64) ([]Line, error) {
	if _, err := s.store.RunByID(ctx, runID); err != nil {
		return nil, err
	}
	lines, err := s.store.ListLines(ctx, runID)
	if lines == nil {
		lines = []Line{}
	}
	return lines, err
}

// UpdateLineHours clamps the entered hours, recomputes the line's tax from its
// run's tax year (zero when PAYE is toggled off), persists hours and tax
// together, and returns the derived figures. Safe to call repeatedly with the
// latest values; the last write wins.
func (s *Service) UpdateLineHours(ctx context.Context, lineID int64, hours Hours) (Figures, error) {
	hours = hours.Clamp()

	line, err := s.store.LineByID(ctx, lineID)
	if err != nil {
		return Figures{}, err
	}

	gross := Gross(hours, line.RateUsed)

	payeEnabled, err := s.settings.PAYEEnabled(ctx)
	if err != nil {
		return Figures{}, err
	}

	tax := 0.0
	if payeEnabled {
		tax, err = s.tax.ComputeForYear(ctx, gross, line.TaxYearID)
		if err != nil {
			return Figures{}, err
		}
	}

	if err := s.store.UpdateLineHours(ctx, lineID, hours, tax); err != nil {
		return Figures{}, err
	}

	uifEnabled, err := s.settings.UIFEnabled(ctx)
	if err != nil {
		return Figures{}, err
	}
	manual, err := s.store.DeductionTotal(ctx, lineID)
	if err != nil {
		return Figures{}, err
	}
	return ComputeFigures(hours, line.RateUsed, tax, manual, uifEnabled), nil
}

// AddDeduction appends to a line's deduction ledger. Description is required;
// the amount is stored as given and only ever summed afterwards.
func (s *Service) AddDeduction(ctx context.Context, lineID int64, description string, amount float64) (int64, error) {
	if strings.TrimSpace(description) == "" {
		return 0, ErrDescriptionRequired
	}
	if _, err := s.store.LineByID(ctx, lineID); err != nil {
		return 0, err
	}
	return s.store.AddDeduction(ctx, Deduction{
		PayrollLineID: lineID,
		Description:   strings.TrimSpace(description),
		Amount:        amount,
	})
}

func (s *Service) DeleteDeduction(ctx context.Context, deductionID int64) error {
	return s.store.DeleteDeduction(ctx, deductionID)
}

// PayslipData assembles everything payslip rendering needs. Figures use the
// stored tax amount; nothing is recomputed against the tax table here.
func (s *Service) PayslipData(ctx context.Context, lineID int64) (PayslipData, error) {
	data, err := s.store.PayslipRow(ctx, lineID)
	if err != nil {
		return PayslipData{}, err
	}

	data.Settings, err = s.settings.All(ctx)
	if err != nil {
		return PayslipData{}, err
	}

	uifEnabled, err := s.settings.UIFEnabled(ctx)
	if err != nil {
		return PayslipData{}, err
	}

	manual := 0.0
	for _, deduction := range data.Deductions {
		manual += deduction.Amount
	}

	hours := Hours{Wk1: data.Line.HoursWk1, Wk2: data.Line.HoursWk2, OT15: data.Line.OT15Hours, OT20: data.Line.OT20Hours}
	data.Figures = ComputeFigures(hours, data.Line.RateUsed, data.Line.TaxAmount, manual, uifEnabled)
	return data, nil
}
