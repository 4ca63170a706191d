package payrun

import (
	"context"
	"time"
)

type StoreAPI interface {
	ListRuns(ctx context.Context, year int) ([]Run, error)
	RunByID(ctx context.Context, runID int64) (Run, error)
	CreateRun(ctx context.Context, periodStart, periodEnd, payDate time.Time) (int64, int, error)
	AddMissingEmployees(ctx context.Context, runID int64) (int, error)
	UpdateRunDates(ctx context.Context, runID int64, patch RunPatch) error
	DeleteRun(ctx context.Context, runID int64) error

	ListLines(ctx context.Context, runID int64) ([]Line, error)
	LineByID(ctx context.Context, lineID int64) (Line, error)
	UpdateLineHours(ctx context.Context, lineID int64, hours Hours, tax float64) error

	ListDeductions(ctx context.Context, lineID int64) ([]Deduction, error)
	DeductionTotal(ctx context.Context, lineID int64) (float64, error)
	AddDeduction(ctx context.Context, deduction Deduction) (int64, error)
	DeleteDeduction(ctx context.Context, deductionID int64) error

	PayslipRow(ctx context.Context, lineID int64) (PayslipData, error)
}
