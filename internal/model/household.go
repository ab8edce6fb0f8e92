package model

// Household is one billing unit: a residence and its owner of record.
type Household struct {
	ID          int64  `json:"id"`
	OwnerName   string `json:"ownerName"`
	Address     string `json:"address"`
	NumMembers  int    `json:"numMembers"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Active      bool   `json:"active"`
}

// HouseholdStatistics is the per-household rollup returned by the backend.
type HouseholdStatistics struct {
	TotalPaid     float64 `json:"totalPaid"`
	PaymentCount  int     `json:"paymentCount"`
	VerifiedCount int     `json:"verifiedCount"`
}
