package handler

import (
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bluemoon/fees-admin/internal/model"
)

func (v *View) HouseholdsPage(w http.ResponseWriter, r *http.Request) {
	data := v.baseData("Households — BlueMoon Fees")
	v.render(w, "households.html", data)
}

// HouseholdList is the HTMX partial behind the search box and pager. The
// whole collection is fetched and filtered here; the backend has no paged
// listing.
func (v *View) HouseholdList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	showAll := q.Get("show_all") == "true"

	households, err := v.api.ListHouseholds(r.Context(), showAll)
	if err != nil {
		v.fail(w, r, err, "failed to load households")
		return
	}

	search := q.Get("q")
	filtered := households[:0:0]
	for _, h := range households {
		if matchesQuery(search, h.OwnerName, h.Address, h.PhoneNumber, h.Email) {
			filtered = append(filtered, h)
		}
	}

	size := sizeParam(r)
	page := paginate(filtered, pageParam(r), size)
	v.renderPartial(w, "household-list", map[string]any{
		"Page":    page,
		"Query":   search,
		"ShowAll": showAll,
		"Size":    size,
		"IsAdmin": v.sess.IsAdmin(),
	})
}

func (v *View) HouseholdNewForm(w http.ResponseWriter, r *http.Request) {
	v.renderPartial(w, "household-form", map[string]any{"Household": model.Household{Active: true}})
}

func (v *View) HouseholdEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	h, err := v.api.GetHousehold(r.Context(), id)
	if err != nil {
		v.fail(w, r, err, "failed to load household")
		return
	}

	v.renderPartial(w, "household-form", map[string]any{"Household": h, "Editing": true})
}

func (v *View) HouseholdCreate(w http.ResponseWriter, r *http.Request) {
	h, ok := v.householdFromForm(w, r)
	if !ok {
		return
	}

	if _, err := v.api.CreateHousehold(r.Context(), h); err != nil {
		v.formError(w, "#household-form-feedback", backendMessage(err, "Failed to create household"))
		return
	}

	v.HouseholdList(w, r)
}

func (v *View) HouseholdUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	h, ok := v.householdFromForm(w, r)
	if !ok {
		return
	}

	if _, err := v.api.UpdateHousehold(r.Context(), id, h); err != nil {
		v.formError(w, "#household-form-feedback", backendMessage(err, "Failed to update household"))
		return
	}

	v.HouseholdList(w, r)
}

// HouseholdConfirmDelete shows the confirm dialog before a delete. The
// wording flips on the household's current state, since the backend
// deactivates active households but permanently removes inactive ones.
func (v *View) HouseholdConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	h, err := v.api.GetHousehold(r.Context(), id)
	if err != nil {
		v.fail(w, r, err, "failed to load household")
		return
	}

	v.renderPartial(w, "household-confirm-delete", map[string]any{"Household": h})
}

// HouseholdDelete forwards the delete and re-renders the list. The backend
// decides the effect: an active household is deactivated, an inactive one
// is removed for good. The confirm dialog wording lives in the template.
func (v *View) HouseholdDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := v.api.DeleteHousehold(r.Context(), id); err != nil {
		v.fail(w, r, err, "failed to delete household")
		return
	}

	v.HouseholdList(w, r)
}

func (v *View) HouseholdActivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := v.api.ActivateHousehold(r.Context(), id); err != nil {
		v.fail(w, r, err, "failed to activate household")
		return
	}

	v.HouseholdList(w, r)
}

// HouseholdDetail shows one household with its payments and totals.
func (v *View) HouseholdDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var (
		household *model.Household
		payments  []model.Payment
		hstats    *model.HouseholdStatistics
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		household, err = v.api.GetHousehold(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = v.api.HouseholdPayments(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		hstats, err = v.api.HouseholdStatistics(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		v.fail(w, r, err, "failed to load household")
		return
	}

	data := v.baseData(household.OwnerName + " — BlueMoon Fees")
	data["Household"] = household
	data["Payments"] = payments
	data["Stats"] = hstats
	v.render(w, "household_detail.html", data)
}

func (v *View) householdFromForm(w http.ResponseWriter, r *http.Request) (model.Household, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return model.Household{}, false
	}

	h := model.Household{
		OwnerName:   strings.TrimSpace(r.FormValue("owner_name")),
		Address:     strings.TrimSpace(r.FormValue("address")),
		PhoneNumber: strings.TrimSpace(r.FormValue("phone_number")),
		Email:       strings.TrimSpace(r.FormValue("email")),
		Active:      r.FormValue("active") != "false",
	}
	if h.OwnerName == "" || h.Address == "" {
		v.formError(w, "#household-form-feedback", "Owner name and address are required")
		return model.Household{}, false
	}

	// Member counts arrive as text; anything unparseable or below one is
	// coerced to one rather than rejecting the form.
	h.NumMembers = 1
	if n, err := strconv.Atoi(strings.TrimSpace(r.FormValue("num_members"))); err == nil && n >= 1 {
		h.NumMembers = n
	}
	return h, true
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
