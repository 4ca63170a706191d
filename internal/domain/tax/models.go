package tax

import "time"

type Year struct {
	ID              int64     `json:"id"`
	Label           string    `json:"label"`
	Frequency       string    `json:"frequency"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	PrimaryRebate   float64   `json:"primaryRebate"`
	SecondaryRebate float64   `json:"secondaryRebate"`
	TertiaryRebate  float64   `json:"tertiaryRebate"`
	Locked          bool      `json:"locked"`
}

type Bracket struct {
	ID        int64   `json:"id"`
	TaxYearID int64   `json:"taxYearId"`
	MinIncome float64 `json:"minIncome"`
	// MaxIncome is nil for the unbounded top bracket.
	MaxIncome    *float64 `json:"maxIncome"`
	BaseTax      float64  `json:"baseTax"`
	MarginalRate float64  `json:"marginalRate"`
}
