package stats

import (
	"testing"
	"time"

	"github.com/bluemoon/fees-admin/internal/model"
)

func date(y int, m time.Month, d int) model.Date {
	return model.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestSummarize(t *testing.T) {
	households := []model.Household{{ID: 1}, {ID: 2}, {ID: 3}}
	fees := []model.Fee{{ID: 1}, {ID: 2}}
	payments := []model.Payment{
		{ID: 1, Amount: 100, Verified: true},
		{ID: 2, Amount: 50},
		{ID: 3, Amount: 25, Verified: true},
		{ID: 4, Amount: 10},
		{ID: 5, Amount: 15},
	}

	s := Summarize(households, fees, payments)

	if s.TotalHouseholds != 3 || s.TotalFees != 2 || s.TotalPayments != 5 {
		t.Errorf("counts = %d/%d/%d, want 3/2/5", s.TotalHouseholds, s.TotalFees, s.TotalPayments)
	}
	if s.TotalCollected != 200 {
		t.Errorf("total collected = %v, want 200", s.TotalCollected)
	}
	// 5 payments / (3 households x 2 fees) = 83%
	if s.CollectionRate != 83 {
		t.Errorf("collection rate = %d, want 83", s.CollectionRate)
	}
	if s.VerifiedPayments != 2 {
		t.Errorf("verified payments = %d, want 2", s.VerifiedPayments)
	}
	// 2/5 = 40%
	if s.VerificationRate != 40 {
		t.Errorf("verification rate = %d, want 40", s.VerificationRate)
	}
}

func TestSummarizeZeroDenominators(t *testing.T) {
	payments := []model.Payment{{ID: 1, Amount: 10}}

	s := Summarize(nil, []model.Fee{{ID: 1}}, payments)
	if s.CollectionRate != 0 {
		t.Errorf("collection rate with zero households = %d, want 0", s.CollectionRate)
	}

	s = Summarize([]model.Household{{ID: 1}}, nil, payments)
	if s.CollectionRate != 0 {
		t.Errorf("collection rate with zero fees = %d, want 0", s.CollectionRate)
	}

	s = Summarize(nil, nil, nil)
	if s.CollectionRate != 0 || s.VerificationRate != 0 || s.TotalCollected != 0 {
		t.Errorf("empty summary = %+v, want zeros", s)
	}
}

func TestRecentPayments(t *testing.T) {
	payments := []model.Payment{
		{ID: 1, PaymentDate: date(2026, 3, 1)},
		{ID: 2, PaymentDate: date(2026, 8, 15)},
		{ID: 3, PaymentDate: date(2026, 5, 10)},
		{ID: 4, PaymentDate: date(2026, 7, 1)},
	}

	got := RecentPayments(payments, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantOrder := []int64{2, 4, 3}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}

	// Input order untouched.
	if payments[0].ID != 1 {
		t.Error("RecentPayments must not reorder its input")
	}
}

func TestRecentPaymentsShortList(t *testing.T) {
	payments := []model.Payment{{ID: 1, PaymentDate: date(2026, 1, 1)}}
	if got := RecentPayments(payments, 5); len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
	if got := RecentPayments(nil, 5); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
