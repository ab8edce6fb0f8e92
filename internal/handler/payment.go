package handler

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bluemoon/fees-admin/internal/api"
	"github.com/bluemoon/fees-admin/internal/model"
)

func (v *View) PaymentsPage(w http.ResponseWriter, r *http.Request) {
	data := v.baseData("Payments — BlueMoon Fees")
	v.render(w, "payments.html", data)
}

func (v *View) PaymentList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filters api.PaymentFilters
	switch q.Get("verified") {
	case "true":
		verified := true
		filters.Verified = &verified
	case "false":
		verified := false
		filters.Verified = &verified
	}

	payments, err := v.api.ListPayments(r.Context(), filters)
	if err != nil {
		v.fail(w, r, err, "failed to load payments")
		return
	}

	search := q.Get("q")
	filtered := payments[:0:0]
	for _, p := range payments {
		if matchesQuery(search, p.HouseholdOwnerName, p.HouseholdAddress, p.FeeName) {
			filtered = append(filtered, p)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].PaymentDate.After(filtered[j].PaymentDate.Time)
	})

	size := sizeParam(r)
	page := paginate(filtered, pageParam(r), size)
	v.renderPartial(w, "payment-list", map[string]any{
		"Page":     page,
		"Query":    search,
		"Verified": q.Get("verified"),
		"Size":     size,
		"IsAdmin":  v.sess.IsAdmin(),
	})
}

// PaymentNewForm loads the household and fee pickers alongside the form.
func (v *View) PaymentNewForm(w http.ResponseWriter, r *http.Request) {
	households, fees, err := v.paymentFormChoices(r)
	if err != nil {
		v.fail(w, r, err, "failed to load payment form")
		return
	}

	v.renderPartial(w, "payment-form", map[string]any{
		"Payment":    model.Payment{},
		"Households": households,
		"Fees":       fees,
		"Today":      time.Now().Format("2006-01-02"),
	})
}

func (v *View) PaymentEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	payment, err := v.api.GetPayment(r.Context(), id)
	if err != nil {
		v.fail(w, r, err, "failed to load payment")
		return
	}

	households, fees, err := v.paymentFormChoices(r)
	if err != nil {
		v.fail(w, r, err, "failed to load payment form")
		return
	}

	v.renderPartial(w, "payment-form", map[string]any{
		"Payment":    payment,
		"Households": households,
		"Fees":       fees,
		"Editing":    true,
	})
}

func (v *View) PaymentCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := v.paymentFromForm(w, r)
	if !ok {
		return
	}

	if _, err := v.api.CreatePayment(r.Context(), in); err != nil {
		v.formError(w, "#payment-form-feedback", backendMessage(err, "Failed to record payment"))
		return
	}

	v.PaymentList(w, r)
}

func (v *View) PaymentUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	in, ok := v.paymentFromForm(w, r)
	if !ok {
		return
	}

	if _, err := v.api.UpdatePayment(r.Context(), id, in); err != nil {
		v.formError(w, "#payment-form-feedback", backendMessage(err, "Failed to update payment"))
		return
	}

	v.PaymentList(w, r)
}

func (v *View) PaymentDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := v.api.DeletePayment(r.Context(), id); err != nil {
		v.fail(w, r, err, "failed to delete payment")
		return
	}

	v.PaymentList(w, r)
}

func (v *View) PaymentVerify(w http.ResponseWriter, r *http.Request) {
	v.setPaymentVerified(w, r, true)
}

func (v *View) PaymentUnverify(w http.ResponseWriter, r *http.Request) {
	v.setPaymentVerified(w, r, false)
}

func (v *View) setPaymentVerified(w http.ResponseWriter, r *http.Request, verified bool) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := v.api.SetPaymentVerified(r.Context(), id, verified); err != nil {
		v.fail(w, r, err, "failed to update payment verification")
		return
	}

	v.PaymentList(w, r)
}

// HouseholdPicker answers the payment form's search-as-you-type household
// field, searching owner name and address on the backend.
func (v *View) HouseholdPicker(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("household_q"))

	var (
		households []model.Household
		err        error
	)
	if q == "" {
		households, err = v.api.ListHouseholds(r.Context(), false)
	} else {
		households, err = v.api.SearchHouseholds(r.Context(), api.HouseholdSearch{
			OwnerName: q,
			Address:   q,
		})
	}
	if err != nil {
		v.fail(w, r, err, "household search failed")
		return
	}

	v.renderPartial(w, "household-picker-options", map[string]any{"Households": households})
}

// FeePicker answers the payment form's fee search field. Fees are filtered
// locally; the backend has no fee name search.
func (v *View) FeePicker(w http.ResponseWriter, r *http.Request) {
	fees, err := v.api.ListFees(r.Context(), nil)
	if err != nil {
		v.fail(w, r, err, "fee search failed")
		return
	}

	q := r.URL.Query().Get("fee_q")
	filtered := fees[:0:0]
	for _, f := range fees {
		if matchesQuery(q, f.Name) {
			filtered = append(filtered, f)
		}
	}

	v.renderPartial(w, "fee-picker-options", map[string]any{"Fees": filtered})
}

func (v *View) paymentFormChoices(r *http.Request) ([]model.Household, []model.Fee, error) {
	var (
		households []model.Household
		fees       []model.Fee
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		households, err = v.api.ListHouseholds(ctx, false)
		return err
	})
	g.Go(func() error {
		var err error
		fees, err = v.api.ListFees(ctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return households, fees, nil
}

func (v *View) paymentFromForm(w http.ResponseWriter, r *http.Request) (model.PaymentInput, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return model.PaymentInput{}, false
	}

	householdID, err1 := strconv.ParseInt(r.FormValue("household_id"), 10, 64)
	feeID, err2 := strconv.ParseInt(r.FormValue("fee_id"), 10, 64)
	if err1 != nil || err2 != nil || householdID <= 0 || feeID <= 0 {
		v.formError(w, "#payment-form-feedback", "Household and fee are required")
		return model.PaymentInput{}, false
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("amount")), 64)
	if err != nil || amount <= 0 {
		v.formError(w, "#payment-form-feedback", "Amount must be a positive number")
		return model.PaymentInput{}, false
	}

	in := model.PaymentInput{
		HouseholdID: householdID,
		FeeID:       feeID,
		Amount:      amount,
	}

	// Blank partial-amount field means paid in full; the client fills the
	// default on the way out.
	if paid := strings.TrimSpace(r.FormValue("amount_paid")); paid != "" {
		amountPaid, err := strconv.ParseFloat(paid, 64)
		if err != nil || amountPaid < 0 {
			v.formError(w, "#payment-form-feedback", "Amount paid must be a number")
			return model.PaymentInput{}, false
		}
		in.AmountPaid = amountPaid
	}

	date := r.FormValue("payment_date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		v.formError(w, "#payment-form-feedback", "Payment date must be YYYY-MM-DD")
		return model.PaymentInput{}, false
	}
	in.PaymentDate = model.NewDate(t)

	return in, true
}
