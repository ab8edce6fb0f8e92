package handler

import (
	"net/http"
	"strings"

	"github.com/bluemoon/fees-admin/internal/model"
)

// User management is admin-only; the router wraps these in RequireAdmin.

func (v *View) UsersPage(w http.ResponseWriter, r *http.Request) {
	data := v.baseData("Users — BlueMoon Fees")
	v.render(w, "users.html", data)
}

func (v *View) UserList(w http.ResponseWriter, r *http.Request) {
	users, err := v.api.ListUsers(r.Context())
	if err != nil {
		v.fail(w, r, err, "failed to load users")
		return
	}

	search := r.URL.Query().Get("q")
	filtered := users[:0:0]
	for _, u := range users {
		if matchesQuery(search, u.Username, u.Email, u.FullName) {
			filtered = append(filtered, u)
		}
	}

	size := sizeParam(r)
	page := paginate(filtered, pageParam(r), size)
	v.renderPartial(w, "user-list", map[string]any{
		"Page":     page,
		"Query":    search,
		"Size":     size,
		"Username": v.currentUsername(),
	})
}

func (v *View) UserNewForm(w http.ResponseWriter, r *http.Request) {
	v.renderPartial(w, "user-form", map[string]any{"User": model.User{Enabled: true}})
}

func (v *View) UserEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	u, err := v.api.GetUser(r.Context(), id)
	if err != nil {
		v.fail(w, r, err, "failed to load user")
		return
	}

	v.renderPartial(w, "user-form", map[string]any{"User": u, "Editing": true})
}

func (v *View) UserCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := v.userFromForm(w, r)
	if !ok {
		return
	}

	if _, err := v.api.CreateUser(r.Context(), u); err != nil {
		v.formError(w, "#user-form-feedback", backendMessage(err, "Failed to create user"))
		return
	}

	v.UserList(w, r)
}

func (v *View) UserUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	u, ok := v.userFromForm(w, r)
	if !ok {
		return
	}

	if _, err := v.api.UpdateUser(r.Context(), id, u); err != nil {
		v.formError(w, "#user-form-feedback", backendMessage(err, "Failed to update user"))
		return
	}

	v.UserList(w, r)
}

func (v *View) UserSetRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	isAdmin := r.FormValue("is_admin") == "true"
	if err := v.api.SetUserRole(r.Context(), id, isAdmin); err != nil {
		v.fail(w, r, err, "failed to change role")
		return
	}

	v.UserList(w, r)
}

func (v *View) UserSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	enabled := r.FormValue("enabled") == "true"
	if err := v.api.SetUserStatus(r.Context(), id, enabled); err != nil {
		v.fail(w, r, err, "failed to change status")
		return
	}

	v.UserList(w, r)
}

func (v *View) UserDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := v.api.DeleteUser(r.Context(), id); err != nil {
		v.fail(w, r, err, "failed to delete user")
		return
	}

	v.UserList(w, r)
}

func (v *View) userFromForm(w http.ResponseWriter, r *http.Request) (model.User, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return model.User{}, false
	}

	u := model.User{
		Username: strings.TrimSpace(r.FormValue("username")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		FullName: strings.TrimSpace(r.FormValue("full_name")),
		Enabled:  r.FormValue("enabled") != "false",
	}
	if r.FormValue("is_admin") == "true" {
		u.Role = model.RoleAdmin
	} else {
		u.Role = model.RoleUser
	}

	if u.Username == "" {
		v.formError(w, "#user-form-feedback", "Username is required")
		return model.User{}, false
	}

	return u, true
}

func (v *View) currentUsername() string {
	if p := v.sess.Profile(); p != nil {
		return p.Username
	}
	return ""
}
