package tax

import (
	"errors"
	"testing"
	"time"
)

func f(v float64) *float64 { return &v }

func testYear(rebate float64) Year {
	return Year{
		ID:            1,
		Label:         "test",
		Frequency:     FrequencyFortnightly,
		StartDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		PrimaryRebate: rebate,
		Locked:        true,
	}
}

func testBrackets() []Bracket {
	return []Bracket{
		{MinIncome: 0, MaxIncome: f(100000), BaseTax: 0, MarginalRate: 0.18},
		{MinIncome: 100000, MaxIncome: f(200000), BaseTax: 18000, MarginalRate: 0.25},
		{MinIncome: 200000, MaxIncome: nil, BaseTax: 43000, MarginalRate: 0.4},
	}
}

func TestComputeFloorsPeriodTax(t *testing.T) {
	// annual 130000 -> 18000 + 30000*0.25 = 25500 -> 25500/26 = 980.77 -> 980
	got, err := Compute(5000, testYear(0), testBrackets())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 980 {
		t.Fatalf("expected 980, got %v", got)
	}
}

func TestComputeRebateClampsToZero(t *testing.T) {
	// annual tax 25500 minus annualized rebate 26000 goes negative.
	got, err := Compute(5000, testYear(1000), testBrackets())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestCompute2025FortnightScenario(t *testing.T) {
	// 2025/2026 SARS table, fortnightly gross R5000: annual 130000 falls in the
	// 18% bracket (23400 annual tax) and the annualized rebate wipes it out.
	year := testYear(17235)
	brackets := []Bracket{
		{MinIncome: 0, MaxIncome: f(237100), BaseTax: 0, MarginalRate: 0.18},
		{MinIncome: 237100, MaxIncome: f(370500), BaseTax: 42678, MarginalRate: 0.26},
		{MinIncome: 370500, MaxIncome: f(512800), BaseTax: 77362, MarginalRate: 0.31},
		{MinIncome: 512800, MaxIncome: f(673000), BaseTax: 121475, MarginalRate: 0.36},
		{MinIncome: 673000, MaxIncome: f(857900), BaseTax: 179147, MarginalRate: 0.39},
		{MinIncome: 857900, MaxIncome: f(1817000), BaseTax: 251258, MarginalRate: 0.41},
		{MinIncome: 1817000, MaxIncome: nil, BaseTax: 644489, MarginalRate: 0.45},
	}

	got, err := Compute(5000, year, brackets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestComputeMonotonic(t *testing.T) {
	year := testYear(0)
	brackets := testBrackets()

	prev := float64(-1)
	for gross := float64(0); gross <= 20000; gross += 250 {
		got, err := Compute(gross, year, brackets)
		if err != nil {
			t.Fatalf("unexpected error at gross %v: %v", gross, err)
		}
		if got < prev {
			t.Fatalf("tax decreased at gross %v: %v < %v", gross, got, prev)
		}
		prev = got
	}
}

func TestComputeNoBracket(t *testing.T) {
	brackets := []Bracket{
		{MinIncome: 0, MaxIncome: f(100000), BaseTax: 0, MarginalRate: 0.18},
	}
	_, err := Compute(5000, testYear(0), brackets)
	if !errors.Is(err, ErrNoBracket) {
		t.Fatalf("expected ErrNoBracket, got %v", err)
	}
}

func TestPeriodsPerYear(t *testing.T) {
	if got := PeriodsPerYear(FrequencyWeekly); got != 52 {
		t.Fatalf("weekly: expected 52, got %d", got)
	}
	if got := PeriodsPerYear(FrequencyMonthly); got != 12 {
		t.Fatalf("monthly: expected 12, got %d", got)
	}
	if got := PeriodsPerYear(FrequencyFortnightly); got != 26 {
		t.Fatalf("fortnightly: expected 26, got %d", got)
	}
	if got := PeriodsPerYear("unknown"); got != 26 {
		t.Fatalf("fallback: expected 26, got %d", got)
	}
}

func TestValidateBrackets(t *testing.T) {
	if err := ValidateBrackets(testBrackets()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ValidateBrackets(nil); err == nil {
		t.Fatal("expected error for empty set")
	}

	gap := []Bracket{
		{MinIncome: 0, MaxIncome: f(100000)},
		{MinIncome: 150000, MaxIncome: nil},
	}
	if err := ValidateBrackets(gap); err == nil {
		t.Fatal("expected error for gap")
	}

	nonZeroStart := []Bracket{
		{MinIncome: 1000, MaxIncome: nil},
	}
	if err := ValidateBrackets(nonZeroStart); err == nil {
		t.Fatal("expected error for non-zero start")
	}

	boundedTop := []Bracket{
		{MinIncome: 0, MaxIncome: f(100000)},
		{MinIncome: 100000, MaxIncome: f(200000)},
	}
	if err := ValidateBrackets(boundedTop); err == nil {
		t.Fatal("expected error for bounded top bracket")
	}
}
