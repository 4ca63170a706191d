package employee

type Employee struct {
	ID           int64   `json:"id"`
	FullName     string  `json:"fullName"`
	EmployeeCode string  `json:"employeeCode"`
	IDNumber     string  `json:"idNumber"`
	Email        string  `json:"email"`
	HourlyRate   float64 `json:"hourlyRate"`
	Active       bool    `json:"active"`
}
