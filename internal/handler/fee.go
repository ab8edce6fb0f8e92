package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bluemoon/fees-admin/internal/model"
)

func (v *View) FeesPage(w http.ResponseWriter, r *http.Request) {
	data := v.baseData("Fees — BlueMoon Fees")
	v.render(w, "fees.html", data)
}

// FeeList is the HTMX partial behind the fee table. Type and status
// filtering happens here over the full collection.
func (v *View) FeeList(w http.ResponseWriter, r *http.Request) {
	fees, err := v.api.ListFees(r.Context(), nil)
	if err != nil {
		v.fail(w, r, err, "failed to load fees")
		return
	}

	q := r.URL.Query()
	search := q.Get("q")
	feeType := q.Get("type")
	status := q.Get("status")

	filtered := fees[:0:0]
	for _, f := range fees {
		if !matchesQuery(search, f.Name, f.Description) {
			continue
		}
		if feeType != "" && string(f.Type) != feeType {
			continue
		}
		if status == "active" && !f.Active {
			continue
		}
		if status == "inactive" && f.Active {
			continue
		}
		filtered = append(filtered, f)
	}

	size := sizeParam(r)
	page := paginate(filtered, pageParam(r), size)
	v.renderPartial(w, "fee-list", map[string]any{
		"Page":    page,
		"Query":   search,
		"Type":    feeType,
		"Status":  status,
		"Size":    size,
		"IsAdmin": v.sess.IsAdmin(),
	})
}

func (v *View) FeeNewForm(w http.ResponseWriter, r *http.Request) {
	v.renderPartial(w, "fee-form", map[string]any{"Fee": model.Fee{Type: model.FeeMandatory, Active: true}})
}

func (v *View) FeeEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	f, err := v.api.GetFee(r.Context(), id)
	if err != nil {
		v.fail(w, r, err, "failed to load fee")
		return
	}

	v.renderPartial(w, "fee-form", map[string]any{"Fee": f, "Editing": true})
}

func (v *View) FeeCreate(w http.ResponseWriter, r *http.Request) {
	f, ok := v.feeFromForm(w, r)
	if !ok {
		return
	}

	// Fees proposed by non-admin operators start inactive and wait for an
	// admin to switch them on.
	if !v.sess.IsAdmin() {
		f.Active = false
	}

	if _, err := v.api.CreateFee(r.Context(), f); err != nil {
		v.formError(w, "#fee-form-feedback", backendMessage(err, "Failed to create fee"))
		return
	}

	v.FeeList(w, r)
}

func (v *View) FeeUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	f, ok := v.feeFromForm(w, r)
	if !ok {
		return
	}

	if _, err := v.api.UpdateFee(r.Context(), id, f); err != nil {
		v.formError(w, "#fee-form-feedback", backendMessage(err, "Failed to update fee"))
		return
	}

	v.FeeList(w, r)
}

// FeeToggleStatus flips active/inactive and answers with just the status
// chip. On failure the chip is re-rendered in its prior state so the swap
// visibly reverts.
func (v *View) FeeToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	active := r.FormValue("active") == "true"
	if err := v.api.SetFeeStatus(r.Context(), id, active); err != nil {
		v.logger.Warn("fee status toggle failed", "fee_id", id, "error", err)
		v.renderPartial(w, "fee-status-flash", map[string]any{"ID": id, "Active": !active})
		return
	}

	v.renderPartial(w, "fee-status-chip", map[string]any{"ID": id, "Active": active})
}

func (v *View) FeeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := v.api.DeleteFee(r.Context(), id); err != nil {
		v.fail(w, r, err, "failed to delete fee")
		return
	}

	v.FeeList(w, r)
}

func (v *View) feeFromForm(w http.ResponseWriter, r *http.Request) (model.Fee, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return model.Fee{}, false
	}

	f := model.Fee{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Active:      r.FormValue("active") != "false",
	}

	switch r.FormValue("type") {
	case string(model.FeeVoluntary):
		f.Type = model.FeeVoluntary
	default:
		f.Type = model.FeeMandatory
	}

	if f.Name == "" {
		v.formError(w, "#fee-form-feedback", "Name is required")
		return model.Fee{}, false
	}

	// Zero is a valid amount (a free mandatory fee); only negatives are out.
	amount, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("amount")), 64)
	if err != nil || amount < 0 {
		v.formError(w, "#fee-form-feedback", "Amount must be zero or more")
		return model.Fee{}, false
	}
	f.Amount = amount

	if due := r.FormValue("due_date"); due != "" {
		t, err := time.Parse("2006-01-02", due)
		if err != nil {
			v.formError(w, "#fee-form-feedback", "Due date must be YYYY-MM-DD")
			return model.Fee{}, false
		}
		f.DueDate = model.NewDate(t)
	}

	return f, true
}
