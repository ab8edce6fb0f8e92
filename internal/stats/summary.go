// Package stats computes dashboard and statistics aggregates from entity
// lists already fetched from the backend. Everything here is pure: inputs
// and a clock in, values out, no I/O.
package stats

import (
	"math"
	"sort"

	"github.com/bluemoon/fees-admin/internal/model"
)

// Summary backs the dashboard cards. Collection rate assumes every active
// household owes every active fee.
type Summary struct {
	TotalHouseholds  int
	TotalFees        int
	TotalPayments    int
	TotalCollected   float64
	CollectionRate   int
	VerifiedPayments int
	VerificationRate int
}

// Summarize computes the dashboard summary. households and fees are the
// active-only lists; payments is unfiltered. Zero denominators yield a zero
// rate, not a panic.
func Summarize(households []model.Household, fees []model.Fee, payments []model.Payment) Summary {
	s := Summary{
		TotalHouseholds: len(households),
		TotalFees:       len(fees),
		TotalPayments:   len(payments),
	}

	for _, p := range payments {
		s.TotalCollected += p.Amount
		if p.Verified {
			s.VerifiedPayments++
		}
	}

	if potential := len(households) * len(fees); potential > 0 {
		s.CollectionRate = roundPercent(float64(len(payments)) / float64(potential))
	}
	if len(payments) > 0 {
		s.VerificationRate = roundPercent(float64(s.VerifiedPayments) / float64(len(payments)))
	}
	return s
}

// RecentPayments returns the n most recent payments, newest first. The
// input is not modified.
func RecentPayments(payments []model.Payment, n int) []model.Payment {
	sorted := make([]model.Payment, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PaymentDate.After(sorted[j].PaymentDate.Time)
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func roundPercent(ratio float64) int {
	return int(math.Round(ratio * 100))
}
