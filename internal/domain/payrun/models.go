package payrun

import "time"

type Run struct {
	ID          int64     `json:"id"`
	TaxYearID   int64     `json:"taxYearId"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	PayDate     time.Time `json:"payDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RunPatch updates run dates only. Date changes never re-bind the tax year or
// recompute lines.
type RunPatch struct {
	PeriodStart *time.Time `json:"periodStart"`
	PeriodEnd   *time.Time `json:"periodEnd"`
	PayDate     *time.Time `json:"payDate"`
}

type Line struct {
	ID         int64   `json:"id"`
	PayRunID   int64   `json:"payRunId"`
	EmployeeID int64   `json:"employeeId"`
	HoursWk1   float64 `json:"hoursWk1"`
	HoursWk2   float64 `json:"hoursWk2"`
	OT15Hours  float64 `json:"ot15Hours"`
	OT20Hours  float64 `json:"ot20Hours"`
	// RateUsed is the employee's hourly rate snapshotted at run creation.
	// Later rate changes on the roster do not touch it.
	RateUsed  float64 `json:"rateUsed"`
	TaxAmount float64 `json:"taxAmount"`
	TaxYearID int64   `json:"taxYearId"`

	FullName     string `json:"fullName"`
	EmployeeCode string `json:"employeeCode"`
}

type Hours struct {
	Wk1  float64 `json:"hoursWk1"`
	Wk2  float64 `json:"hoursWk2"`
	OT15 float64 `json:"ot15Hours"`
	OT20 float64 `json:"ot20Hours"`
}

type Deduction struct {
	ID            int64   `json:"id"`
	PayrollLineID int64   `json:"payrollLineId"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
}

// Figures is one line's fully derived pay breakdown.
type Figures struct {
	NormalPay       float64 `json:"normalPay"`
	OT15Pay         float64 `json:"ot15Pay"`
	OT20Pay         float64 `json:"ot20Pay"`
	Gross           float64 `json:"gross"`
	UIF             float64 `json:"uif"`
	Tax             float64 `json:"tax"`
	TotalDeductions float64 `json:"totalDeductions"`
	Net             float64 `json:"net"`
}

// PayslipData is the single payload payslip rendering reads: the line, its
// employee and run period fields, the deduction ledger, a settings snapshot
// and the derived figures.
type PayslipData struct {
	Line        Line              `json:"line"`
	IDNumber    string            `json:"idNumber"`
	Email       string            `json:"email"`
	PeriodStart time.Time         `json:"periodStart"`
	PeriodEnd   time.Time         `json:"periodEnd"`
	PayDate     time.Time         `json:"payDate"`
	Deductions  []Deduction       `json:"deductions"`
	Settings    map[string]string `json:"settings"`
	Figures     Figures           `json:"figures"`
}
