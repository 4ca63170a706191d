package reports

// MonthTotal is one month's raw aggregate as read from storage: gross is
// recomputed from hours and the snapshotted rate, tax is the stored figure.
type MonthTotal struct {
	Month int
	Gross float64
	Tax   float64
}

type MonthSummary struct {
	Month string  `json:"month"`
	Gross float64 `json:"gross"`
	UIF   float64 `json:"uif"`
	Tax   float64 `json:"tax"`
	Net   float64 `json:"net"`
}

type EmployeeYTD struct {
	EmployeeID int64   `json:"employeeId"`
	FullName   string  `json:"fullName"`
	TotalGross float64 `json:"totalGross"`
	TotalUIF   float64 `json:"totalUif"`
	TotalTax   float64 `json:"totalTax"`
	TotalNet   float64 `json:"totalNet"`
}

type YTDSummary struct {
	TotalGross float64       `json:"totalGross"`
	TotalUIF   float64       `json:"totalUif"`
	TotalTax   float64       `json:"totalTax"`
	TotalNet   float64       `json:"totalNet"`
	Employees  []EmployeeYTD `json:"employees"`
}

// SARSMonth is one EMP201-style monthly declaration row. The employer UIF
// contribution mirrors the employee's 1%.
type SARSMonth struct {
	Month       string  `json:"month"`
	Gross       float64 `json:"gross"`
	PAYE        float64 `json:"paye"`
	UIFEmployee float64 `json:"uifEmployee"`
	UIFEmployer float64 `json:"uifEmployer"`
	TotalDue    float64 `json:"totalDue"`
}
