package stats

import (
	"sort"

	"github.com/bluemoon/fees-admin/internal/model"
)

// FeeTotal is one slice of the payments-by-fee breakdown.
type FeeTotal struct {
	ID    int64
	Name  string
	Value float64
}

// HouseholdTotal is one row of the top-paying-households table.
type HouseholdTotal struct {
	ID          int64
	OwnerName   string
	TotalPaid   float64
	LastPayment model.Date
}

// PaymentsByFee sums payment amounts per fee, drops fees nothing was paid
// toward, and sorts descending by total. Payments referencing a fee absent
// from the fee list are ignored.
func PaymentsByFee(payments []model.Payment, fees []model.Fee) []FeeTotal {
	totals := make(map[int64]float64, len(fees))
	for _, p := range payments {
		totals[p.FeeID] += p.Amount
	}

	var out []FeeTotal
	for _, f := range fees {
		if v := totals[f.ID]; v > 0 {
			out = append(out, FeeTotal{ID: f.ID, Name: f.Name, Value: v})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// TopPayingHouseholds ranks households by total paid, keeps only those that
// paid anything, and truncates to limit. LastPayment is the most recent
// payment date found for the household.
func TopPayingHouseholds(households []model.Household, payments []model.Payment, limit int) []HouseholdTotal {
	var out []HouseholdTotal
	for _, h := range households {
		total := HouseholdTotal{ID: h.ID, OwnerName: h.OwnerName}
		for _, p := range payments {
			if p.HouseholdID != h.ID {
				continue
			}
			total.TotalPaid += p.Amount
			if p.PaymentDate.After(total.LastPayment.Time) {
				total.LastPayment = p.PaymentDate
			}
		}
		if total.TotalPaid > 0 {
			out = append(out, total)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalPaid > out[j].TotalPaid })
	if limit < len(out) {
		out = out[:limit]
	}
	return out
}
