package payrun

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployee struct {
	id     int64
	rate   float64
	active bool
}

type fakeStore struct {
	runs       map[int64]Run
	lines      map[int64]Line
	deductions map[int64]Deduction
	employees  []fakeEmployee
	nextID     int64

	// mirrors a tax_years table with no locked year covering the pay date
	noLockedYear bool

	savedHours map[int64]Hours
	savedTax   map[int64]float64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		runs:       map[int64]Run{},
		lines:      map[int64]Line{},
		deductions: map[int64]Deduction{},
		nextID:     100,
		savedHours: map[int64]Hours{},
		savedTax:   map[int64]float64{},
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) ListRuns(ctx context.Context, year int) ([]Run, error) {
	var runs []Run
	for _, run := range f.runs {
		runs = append(runs, run)
	}
	return runs, nil
}

func (f *fakeStore) RunByID(ctx context.Context, runID int64) (Run, error) {
	run, ok := f.runs[runID]
	if !ok {
		return Run{}, ErrRunNotFound
	}
	return run, nil
}

func (f *fakeStore) CreateRun(ctx context.Context, periodStart, periodEnd, payDate time.Time) (int64, int, error) {
	if f.noLockedYear {
		return 0, 0, ErrNoTaxYearConfigured
	}
	runID := f.id()
	f.runs[runID] = Run{ID: runID, PeriodStart: periodStart, PeriodEnd: periodEnd, PayDate: payDate}
	added, err := f.AddMissingEmployees(ctx, runID)
	return runID, added, err
}

func (f *fakeStore) AddMissingEmployees(ctx context.Context, runID int64) (int, error) {
	if _, ok := f.runs[runID]; !ok {
		return 0, ErrRunNotFound
	}
	added := 0
	for _, emp := range f.employees {
		if !emp.active {
			continue
		}
		covered := false
		for _, line := range f.lines {
			if line.PayRunID == runID && line.EmployeeID == emp.id {
				covered = true
				break
			}
		}
		if covered {
			continue
		}
		lineID := f.id()
		f.lines[lineID] = Line{ID: lineID, PayRunID: runID, EmployeeID: emp.id, RateUsed: emp.rate}
		added++
	}
	return added, nil
}

func (f *fakeStore) UpdateRunDates(ctx context.Context, runID int64, patch RunPatch) error {
	run, ok := f.runs[runID]
	if !ok {
		return ErrRunNotFound
	}
	if patch.PeriodStart != nil {
		run.PeriodStart = *patch.PeriodStart
	}
	if patch.PeriodEnd != nil {
		run.PeriodEnd = *patch.PeriodEnd
	}
	if patch.PayDate != nil {
		run.PayDate = *patch.PayDate
	}
	f.runs[runID] = run
	return nil
}

func (f *fakeStore) DeleteRun(ctx context.Context, runID int64) error {
	if _, ok := f.runs[runID]; !ok {
		return ErrRunNotFound
	}
	delete(f.runs, runID)
	return nil
}

func (f *fakeStore) ListLines(ctx context.Context, runID int64) ([]Line, error) {
	var lines []Line
	for _, line := range f.lines {
		if line.PayRunID == runID {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func (f *fakeStore) LineByID(ctx context.Context, lineID int64) (Line, error) {
	line, ok := f.lines[lineID]
	if !ok {
		return Line{}, ErrLineNotFound
	}
	return line, nil
}

func (f *fakeStore) UpdateLineHours(ctx context.Context, lineID int64, hours Hours, tax float64) error {
	line, ok := f.lines[lineID]
	if !ok {
		return ErrLineNotFound
	}
	line.HoursWk1, line.HoursWk2, line.OT15Hours, line.OT20Hours = hours.Wk1, hours.Wk2, hours.OT15, hours.OT20
	line.TaxAmount = tax
	f.lines[lineID] = line
	f.savedHours[lineID] = hours
	f.savedTax[lineID] = tax
	return nil
}

func (f *fakeStore) ListDeductions(ctx context.Context, lineID int64) ([]Deduction, error) {
	var deductions []Deduction
	for _, deduction := range f.deductions {
		if deduction.PayrollLineID == lineID {
			deductions = append(deductions, deduction)
		}
	}
	return deductions, nil
}

func (f *fakeStore) DeductionTotal(ctx context.Context, lineID int64) (float64, error) {
	total := 0.0
	for _, deduction := range f.deductions {
		if deduction.PayrollLineID == lineID {
			total += deduction.Amount
		}
	}
	return total, nil
}

func (f *fakeStore) AddDeduction(ctx context.Context, deduction Deduction) (int64, error) {
	deduction.ID = f.id()
	f.deductions[deduction.ID] = deduction
	return deduction.ID, nil
}

func (f *fakeStore) DeleteDeduction(ctx context.Context, deductionID int64) error {
	if _, ok := f.deductions[deductionID]; !ok {
		return ErrDeductionNotFound
	}
	delete(f.deductions, deductionID)
	return nil
}

func (f *fakeStore) PayslipRow(ctx context.Context, lineID int64) (PayslipData, error) {
	line, ok := f.lines[lineID]
	if !ok {
		return PayslipData{}, ErrLineNotFound
	}
	deductions, _ := f.ListDeductions(ctx, lineID)
	run := f.runs[line.PayRunID]
	return PayslipData{
		Line:        line,
		Deductions:  deductions,
		PeriodStart: run.PeriodStart,
		PeriodEnd:   run.PeriodEnd,
		PayDate:     run.PayDate,
	}, nil
}

type fakeTax struct {
	fn     func(gross float64) float64
	called bool
}

func (f *fakeTax) ComputeForYear(ctx context.Context, periodicGross float64, yearID int64) (float64, error) {
	f.called = true
	return f.fn(periodicGross), nil
}

type fakeToggles struct {
	paye bool
	uif  bool
}

func (f fakeToggles) PAYEEnabled(ctx context.Context) (bool, error) { return f.paye, nil }
func (f fakeToggles) UIFEnabled(ctx context.Context) (bool, error)  { return f.uif, nil }
func (f fakeToggles) All(ctx context.Context) (map[string]string, error) {
	return map[string]string{"enable_paye": "1", "enable_uif": "1"}, nil
}

func TestUpdateLineHoursRecomputesTax(t *testing.T) {
	store := newFakeStore()
	store.lines[1] = Line{ID: 1, PayRunID: 10, RateUsed: 100, TaxYearID: 7}
	taxCalc := &fakeTax{fn: func(gross float64) float64 { return gross * 0.05 }}
	svc := NewService(store, taxCalc, fakeToggles{paye: true, uif: true})

	figures, err := svc.UpdateLineHours(context.Background(), 1, Hours{Wk1: -10, Wk2: 40})
	require.NoError(t, err)

	// negative wk1 clamps to zero; gross = 40*100
	assert.Equal(t, Hours{Wk1: 0, Wk2: 40}, store.savedHours[1])
	assert.Equal(t, 4000.0, figures.Gross)
	assert.Equal(t, 200.0, figures.Tax)
	assert.Equal(t, 200.0, store.savedTax[1])
	assert.Equal(t, 40.0, figures.UIF)
	assert.Equal(t, 3760.0, figures.Net)
}

func TestUpdateLineHoursPAYEDisabled(t *testing.T) {
	store := newFakeStore()
	store.lines[1] = Line{ID: 1, PayRunID: 10, RateUsed: 100, TaxYearID: 7}
	taxCalc := &fakeTax{fn: func(gross float64) float64 { return 999 }}
	svc := NewService(store, taxCalc, fakeToggles{paye: false, uif: true})

	figures, err := svc.UpdateLineHours(context.Background(), 1, Hours{Wk1: 40, Wk2: 40})
	require.NoError(t, err)

	assert.False(t, taxCalc.called, "tax table must not be consulted when PAYE is off")
	assert.Equal(t, 0.0, figures.Tax)
	assert.Equal(t, 0.0, store.savedTax[1])
}

func TestAddMissingEmployeesIdempotent(t *testing.T) {
	store := newFakeStore()
	store.employees = []fakeEmployee{
		{id: 1, rate: 100, active: true},
		{id: 2, rate: 120, active: true},
		{id: 3, rate: 90, active: false},
	}
	svc := NewService(store, &fakeTax{fn: func(float64) float64 { return 0 }}, fakeToggles{paye: true, uif: true})

	runID, seeded, err := svc.CreateRun(context.Background(),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, seeded, "inactive employees are not seeded")

	store.employees = append(store.employees, fakeEmployee{id: 4, rate: 80, active: true})

	added, err := svc.AddMissingEmployees(context.Background(), runID)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	added, err = svc.AddMissingEmployees(context.Background(), runID)
	require.NoError(t, err)
	assert.Equal(t, 0, added, "second reconciliation with unchanged roster is a no-op")
}

func TestCreateRunRequiresValidPeriod(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeTax{fn: func(float64) float64 { return 0 }}, fakeToggles{})

	_, _, err := svc.CreateRun(context.Background(), time.Time{}, time.Time{}, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	start := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	_, _, err = svc.CreateRun(context.Background(), start, end, end)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestAddDeductionValidation(t *testing.T) {
	store := newFakeStore()
	store.lines[1] = Line{ID: 1, PayRunID: 10, RateUsed: 100}
	svc := NewService(store, &fakeTax{fn: func(float64) float64 { return 0 }}, fakeToggles{})

	_, err := svc.AddDeduction(context.Background(), 1, "  ", 50)
	assert.ErrorIs(t, err, ErrDescriptionRequired)

	_, err = svc.AddDeduction(context.Background(), 99, "Uniform", 50)
	assert.True(t, errors.Is(err, ErrLineNotFound))

	id, err := svc.AddDeduction(context.Background(), 1, " Uniform ", 250)
	require.NoError(t, err)
	assert.Equal(t, "Uniform", store.deductions[id].Description)
}

func TestPayslipDataUsesStoredTax(t *testing.T) {
	store := newFakeStore()
	store.runs[10] = Run{ID: 10}
	store.lines[1] = Line{ID: 1, PayRunID: 10, RateUsed: 100, HoursWk1: 50, HoursWk2: 50, TaxAmount: 123}
	store.deductions[5] = Deduction{ID: 5, PayrollLineID: 1, Description: "Uniform", Amount: 250}
	svc := NewService(store, &fakeTax{fn: func(float64) float64 { return 999 }}, fakeToggles{paye: true, uif: true})

	data, err := svc.PayslipData(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 123.0, data.Figures.Tax, "payslip must use the persisted tax amount")
	assert.Equal(t, 10000.0, data.Figures.Gross)
	assert.Equal(t, 100.0+250.0+123.0, data.Figures.TotalDeductions)
	assert.NotEmpty(t, data.Settings)
}

func TestCreateRunWithoutLockedYearCreatesNothing(t *testing.T) {
	store := newFakeStore()
	store.noLockedYear = true
	store.employees = []fakeEmployee{{id: 1, rate: 100, active: true}}
	svc := NewService(store, &fakeTax{fn: func(float64) float64 { return 0 }}, fakeToggles{})

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	_, seeded, err := svc.CreateRun(context.Background(), start, end, end)

	assert.ErrorIs(t, err, ErrNoTaxYearConfigured)
	assert.Zero(t, seeded)
	assert.Empty(t, store.runs, "a failed create must not leave a run behind")
	assert.Empty(t, store.lines, "a failed create must not seed lines")
}

func TestUpdateRunDatesValidatesMergedPeriod(t *testing.T) {
	store := newFakeStore()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	store.runs[10] = Run{ID: 10, PeriodStart: start, PeriodEnd: end, PayDate: end}
	svc := NewService(store, &fakeTax{fn: func(float64) float64 { return 0 }}, fakeToggles{})

	// end-only patch landing before the stored start
	badEnd := start.AddDate(0, 0, -1)
	err := svc.UpdateRunDates(context.Background(), 10, RunPatch{PeriodEnd: &badEnd})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
	assert.Equal(t, end, store.runs[10].PeriodEnd, "rejected patch must not be written")

	// start-only patch landing after the stored end
	badStart := end.AddDate(0, 0, 1)
	err = svc.UpdateRunDates(context.Background(), 10, RunPatch{PeriodStart: &badStart})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	goodEnd := end.AddDate(0, 0, 7)
	err = svc.UpdateRunDates(context.Background(), 10, RunPatch{PeriodEnd: &goodEnd})
	require.NoError(t, err)
	assert.Equal(t, goodEnd, store.runs[10].PeriodEnd)
}

func TestListsAreNeverNil(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeTax{fn: func(float64) float64 { return 0 }}, fakeToggles{})

	runs, err := svc.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, runs, "an empty year must serialize as [], not null")
	assert.Empty(t, runs)

	store.runs[10] = Run{ID: 10}
	lines, err := svc.ListLines(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, lines, "a freshly created run with no lines must serialize as []")
	assert.Empty(t, lines)
}
