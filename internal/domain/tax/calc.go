package tax

import "math"

const (
	FrequencyWeekly      = "weekly"
	FrequencyFortnightly = "fortnightly"
	FrequencyMonthly     = "monthly"
)

// PeriodsPerYear maps a tax year's pay frequency to the number of pay
// periods used for annualization. Unknown values fall back to fortnightly.
func PeriodsPerYear(frequency string) int {
	switch frequency {
	case FrequencyWeekly:
		return 52
	case FrequencyMonthly:
		return 12
	default:
		return 26
	}
}

// Compute returns the PAYE deduction for a single pay period's gross.
//
// The periodic gross is annualized by the year's pay frequency, taxed at the
// matching bracket's base + marginal amount, reduced by the annualized primary
// rebate, clamped at zero, and truncated back down to a per-period figure.
// A bracket set that fails to cover the annual income is a data-integrity
// fault and is reported as ErrNoBracket, never as a zero tax figure.
func Compute(periodicGross float64, year Year, brackets []Bracket) (float64, error) {
	periods := float64(PeriodsPerYear(year.Frequency))
	annual := periodicGross * periods

	bracket, ok := findBracket(brackets, annual)
	if !ok {
		return 0, ErrNoBracket
	}

	annualTax := bracket.BaseTax + (annual-bracket.MinIncome)*bracket.MarginalRate
	annualTax -= year.PrimaryRebate * periods
	if annualTax < 0 {
		annualTax = 0
	}

	return math.Floor(annualTax / periods), nil
}

func findBracket(brackets []Bracket, annualIncome float64) (Bracket, bool) {
	for _, b := range brackets {
		if annualIncome < b.MinIncome {
			continue
		}
		if b.MaxIncome == nil || annualIncome < *b.MaxIncome {
			return b, true
		}
	}
	return Bracket{}, false
}

// ValidateBrackets checks that a bracket set partitions [0, inf): the first
// bracket starts at zero, each bracket's max equals the next bracket's min,
// and only the last bracket is unbounded. Brackets must arrive sorted by
// MinIncome.
func ValidateBrackets(brackets []Bracket) error {
	if len(brackets) == 0 {
		return ErrBadBracketSet
	}
	if brackets[0].MinIncome != 0 {
		return ErrBadBracketSet
	}
	for i, b := range brackets {
		last := i == len(brackets)-1
		if last {
			if b.MaxIncome != nil {
				return ErrBadBracketSet
			}
			continue
		}
		if b.MaxIncome == nil || *b.MaxIncome <= b.MinIncome {
			return ErrBadBracketSet
		}
		if *b.MaxIncome != brackets[i+1].MinIncome {
			return ErrBadBracketSet
		}
	}
	return nil
}
