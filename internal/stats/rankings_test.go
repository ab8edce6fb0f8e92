package stats

import (
	"testing"

	"github.com/bluemoon/fees-admin/internal/model"
)

func TestPaymentsByFee(t *testing.T) {
	fees := []model.Fee{
		{ID: 1, Name: "Security"},
		{ID: 2, Name: "Garden"},
		{ID: 3, Name: "Pool"},
	}
	payments := []model.Payment{
		{ID: 1, FeeID: 1, Amount: 30},
		{ID: 2, FeeID: 2, Amount: 50},
		{ID: 3, FeeID: 1, Amount: 10},
		{ID: 4, FeeID: 99, Amount: 5}, // fee not in list, ignored
	}

	out := PaymentsByFee(payments, fees)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2 (Pool has no payments)", len(out))
	}
	if out[0].Name != "Garden" || out[0].Value != 50 {
		t.Errorf("out[0] = %+v, want Garden/50", out[0])
	}
	if out[1].Name != "Security" || out[1].Value != 40 {
		t.Errorf("out[1] = %+v, want Security/40", out[1])
	}

	// Every slice is positive and the slices sum to the listed fees' payments.
	var sum float64
	for _, ft := range out {
		if ft.Value <= 0 {
			t.Errorf("fee %q has non-positive value %v", ft.Name, ft.Value)
		}
		sum += ft.Value
	}
	if sum != 90 {
		t.Errorf("sum = %v, want 90", sum)
	}
}

func TestPaymentsByFeeEmpty(t *testing.T) {
	if out := PaymentsByFee(nil, nil); len(out) != 0 {
		t.Errorf("len = %d, want 0", len(out))
	}
}

func TestTopPayingHouseholds(t *testing.T) {
	households := []model.Household{
		{ID: 1, OwnerName: "Nguyen Van A"},
		{ID: 2, OwnerName: "Tran Thi B"},
		{ID: 3, OwnerName: "Le Van C"}, // never paid
	}
	payments := []model.Payment{
		{ID: 1, HouseholdID: 1, Amount: 20, PaymentDate: date(2026, 5, 1)},
		{ID: 2, HouseholdID: 1, Amount: 30, PaymentDate: date(2026, 7, 9)},
		{ID: 3, HouseholdID: 2, Amount: 80, PaymentDate: date(2026, 6, 2)},
	}

	out := TopPayingHouseholds(households, payments, 5)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].ID != 2 || out[0].TotalPaid != 80 {
		t.Errorf("out[0] = %+v, want household 2 with 80", out[0])
	}
	if out[1].ID != 1 || out[1].TotalPaid != 50 {
		t.Errorf("out[1] = %+v, want household 1 with 50", out[1])
	}
	if got := out[1].LastPayment.Format("2006-01-02"); got != "2026-07-09" {
		t.Errorf("LastPayment = %s, want 2026-07-09", got)
	}
}

func TestTopPayingHouseholdsLimit(t *testing.T) {
	households := []model.Household{
		{ID: 1, OwnerName: "A"},
		{ID: 2, OwnerName: "B"},
		{ID: 3, OwnerName: "C"},
	}
	payments := []model.Payment{
		{ID: 1, HouseholdID: 1, Amount: 10, PaymentDate: date(2026, 1, 1)},
		{ID: 2, HouseholdID: 2, Amount: 20, PaymentDate: date(2026, 1, 1)},
		{ID: 3, HouseholdID: 3, Amount: 30, PaymentDate: date(2026, 1, 1)},
	}

	out := TopPayingHouseholds(households, payments, 2)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i].TotalPaid > out[i-1].TotalPaid {
			t.Errorf("not sorted descending at %d: %v > %v", i, out[i].TotalPaid, out[i-1].TotalPaid)
		}
	}
}
