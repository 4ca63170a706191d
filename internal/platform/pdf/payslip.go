package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"payday/internal/domain/company"
	"payday/internal/domain/payrun"
)

// RenderPayslip lays out a payslip from already-computed figures. It is pure
// presentation: nothing is recomputed here.
func RenderPayslip(profile company.Profile, data payrun.PayslipData) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	if profile.Name != "" {
		doc.Cell(0, 10, profile.Name)
		doc.Ln(8)
	}
	doc.Cell(0, 10, "Payslip")
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", data.Line.FullName, data.Line.EmployeeCode))
	doc.Ln(6)
	if data.IDNumber != "" {
		doc.Cell(0, 7, fmt.Sprintf("ID Number: %s", data.IDNumber))
		doc.Ln(6)
	}
	doc.Cell(0, 7, fmt.Sprintf("Period: %s to %s", data.PeriodStart.Format("2006-01-02"), data.PeriodEnd.Format("2006-01-02")))
	doc.Ln(6)
	doc.Cell(0, 7, fmt.Sprintf("Pay Date: %s", data.PayDate.Format("2006-01-02")))
	doc.Ln(10)

	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(0, 7, "Earnings")
	doc.Ln(7)
	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 6, fmt.Sprintf("Normal (%.2f hrs @ R%.2f): R%.2f",
		data.Line.HoursWk1+data.Line.HoursWk2, data.Line.RateUsed, data.Figures.NormalPay))
	doc.Ln(6)
	if data.Figures.OT15Pay != 0 {
		doc.Cell(0, 6, fmt.Sprintf("Overtime 1.5x (%.2f hrs): R%.2f", data.Line.OT15Hours, data.Figures.OT15Pay))
		doc.Ln(6)
	}
	if data.Figures.OT20Pay != 0 {
		doc.Cell(0, 6, fmt.Sprintf("Overtime 2.0x (%.2f hrs): R%.2f", data.Line.OT20Hours, data.Figures.OT20Pay))
		doc.Ln(6)
	}
	doc.Cell(0, 6, fmt.Sprintf("Gross Pay: R%.2f", data.Figures.Gross))
	doc.Ln(10)

	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(0, 7, "Deductions")
	doc.Ln(7)
	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 6, fmt.Sprintf("UIF (1%%): R%.2f", data.Figures.UIF))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("PAYE (Tax): R%.2f", data.Figures.Tax))
	doc.Ln(6)
	for _, deduction := range data.Deductions {
		doc.Cell(0, 6, fmt.Sprintf("%s: R%.2f", deduction.Description, deduction.Amount))
		doc.Ln(6)
	}
	doc.Cell(0, 6, fmt.Sprintf("Total Deductions: R%.2f", data.Figures.TotalDeductions))
	doc.Ln(10)

	doc.SetFont("Helvetica", "B", 13)
	doc.Cell(0, 8, fmt.Sprintf("Net Pay: R%.2f", data.Figures.Net))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
