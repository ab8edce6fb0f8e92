package model

type FeeType string

const (
	FeeMandatory FeeType = "MANDATORY"
	FeeVoluntary FeeType = "VOLUNTARY"
)

// Fee is a chargeable item with a due date. Inactive fees are pending
// approval or retired; they stay visible in the admin list either way.
type Fee struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        FeeType `json:"type"`
	Amount      float64 `json:"amount"`
	DueDate     Date    `json:"dueDate"`
	Description string  `json:"description"`
	Active      bool    `json:"active"`
}

// FeeStatistics is the per-fee rollup returned by the backend.
type FeeStatistics struct {
	TotalCollected float64 `json:"totalCollected"`
	PaymentCount   int     `json:"paymentCount"`
}
