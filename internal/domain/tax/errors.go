package tax

import "errors"

var (
	ErrNoTaxYear     = errors.New("no locked tax year covers the given date")
	ErrNoBracket     = errors.New("no tax bracket covers the annualized income")
	ErrYearNotFound  = errors.New("tax year not found")
	ErrLockedOverlap = errors.New("another locked tax year already covers part of this period")
	ErrBadBracketSet = errors.New("brackets must start at zero and cover all incomes without gaps or overlaps")
)
