package model

// Payment records one household paying toward one fee. The backend returns a
// flattened DTO with denormalized display fields alongside the foreign keys.
type Payment struct {
	ID          int64   `json:"id"`
	HouseholdID int64   `json:"householdId"`
	FeeID       int64   `json:"feeId"`
	Amount      float64 `json:"amount"`
	AmountPaid  float64 `json:"amountPaid"`
	PaymentDate Date    `json:"paymentDate"`
	Verified    bool    `json:"verified"`
	Notes       string  `json:"notes"`

	// Denormalized display fields from the backend DTO.
	HouseholdOwnerName string  `json:"householdOwnerName"`
	HouseholdAddress   string  `json:"householdAddress"`
	FeeName            string  `json:"feeName"`
	FeeAmount          float64 `json:"feeAmount"`
}

// PaymentInput is the flat shape collected by the payment form. The API
// layer reshapes it into the nested body the backend expects.
type PaymentInput struct {
	HouseholdID int64
	FeeID       int64
	Amount      float64
	AmountPaid  float64
	PaymentDate Date
	Verified    bool
	Notes       string
}
