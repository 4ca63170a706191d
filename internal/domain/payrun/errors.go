package payrun

import "errors"

var (
	ErrRunNotFound         = errors.New("pay run not found")
	ErrLineNotFound        = errors.New("payroll line not found")
	ErrDeductionNotFound   = errors.New("deduction not found")
	ErrNoTaxYearConfigured = errors.New("no locked tax year covers the pay date")
	ErrInvalidPeriod       = errors.New("period start, period end and pay date are required and must be in order")
	ErrDescriptionRequired = errors.New("deduction description is required")
)
