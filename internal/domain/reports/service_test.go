package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMonthlyZeroFills(t *testing.T) {
	summaries := buildMonthly(nil, true)

	assert.Len(t, summaries, 12, "a year with no runs still reports 12 months")
	for _, month := range summaries {
		assert.Zero(t, month.Gross)
		assert.Zero(t, month.UIF)
		assert.Zero(t, month.Tax)
		assert.Zero(t, month.Net)
	}
	assert.Equal(t, "Jan", summaries[0].Month)
	assert.Equal(t, "Dec", summaries[11].Month)
}

func TestBuildMonthlyPlacesTotals(t *testing.T) {
	totals := []MonthTotal{
		{Month: 3, Gross: 10000, Tax: 500},
		{Month: 11, Gross: 20000, Tax: 0},
	}
	summaries := buildMonthly(totals, true)

	assert.Equal(t, 10000.0, summaries[2].Gross)
	assert.Equal(t, 100.0, summaries[2].UIF)
	assert.Equal(t, 500.0, summaries[2].Tax)
	assert.Equal(t, 9400.0, summaries[2].Net)

	assert.Equal(t, 20000.0, summaries[10].Gross)
	assert.Zero(t, summaries[3].Gross)
}

func TestBuildMonthlyUIFDisabled(t *testing.T) {
	totals := []MonthTotal{{Month: 1, Gross: 10000, Tax: 0}}
	summaries := buildMonthly(totals, false)

	assert.Zero(t, summaries[0].UIF)
	assert.Equal(t, 10000.0, summaries[0].Net)
}

func TestBuildYTD(t *testing.T) {
	employees := []EmployeeYTD{
		{EmployeeID: 1, FullName: "A", TotalGross: 10000, TotalTax: 200},
		{EmployeeID: 2, FullName: "B", TotalGross: 5000, TotalTax: 0},
	}
	summary := buildYTD(employees, true)

	assert.Equal(t, 15000.0, summary.TotalGross)
	assert.Equal(t, 150.0, summary.TotalUIF)
	assert.Equal(t, 200.0, summary.TotalTax)
	assert.Equal(t, 15000.0-150.0-200.0, summary.TotalNet)

	assert.Equal(t, 100.0, summary.Employees[0].TotalUIF)
	assert.Equal(t, 10000.0-100.0-200.0, summary.Employees[0].TotalNet)
}

func TestBuildSARSMirrorsEmployerUIF(t *testing.T) {
	totals := []MonthTotal{{Month: 6, Gross: 50000, Tax: 1200}}
	months := buildSARS(totals, true)

	assert.Len(t, months, 12)
	june := months[5]
	assert.Equal(t, 50000.0, june.Gross)
	assert.Equal(t, 1200.0, june.PAYE)
	assert.Equal(t, 500.0, june.UIFEmployee)
	assert.Equal(t, 500.0, june.UIFEmployer)
	assert.Equal(t, 2200.0, june.TotalDue)

	assert.Zero(t, months[0].TotalDue)
}
