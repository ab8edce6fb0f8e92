package handler

import (
	"net/http"
	"strings"

	"github.com/bluemoon/fees-admin/internal/api"
)

func (v *View) LoginPage(w http.ResponseWriter, r *http.Request) {
	if v.sess.IsAuthenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	v.render(w, "login.html", v.baseData("Sign in — BlueMoon Fees"))
}

func (v *View) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		v.renderPartial(w, "form-error", map[string]string{"Error": "Username and password are required"})
		return
	}

	if _, err := v.api.Login(r.Context(), username, password); err != nil {
		v.renderPartial(w, "form-error", map[string]string{"Error": backendMessage(err, "Invalid username or password")})
		return
	}

	w.Header().Set("HX-Redirect", "/")
	w.WriteHeader(http.StatusOK)
}

func (v *View) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if v.sess.IsAuthenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	v.render(w, "register.html", v.baseData("Register — BlueMoon Fees"))
}

func (v *View) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	switch {
	case username == "" || password == "":
		v.renderPartial(w, "form-error", map[string]string{"Error": "Username and password are required"})
		return
	case len(password) < 6:
		v.renderPartial(w, "form-error", map[string]string{"Error": "Password must be at least 6 characters"})
		return
	case password != confirm:
		v.renderPartial(w, "form-error", map[string]string{"Error": "Passwords do not match"})
		return
	}

	req := api.RegisterRequest{
		Username: username,
		Password: password,
		Email:    strings.TrimSpace(r.FormValue("email")),
		FullName: strings.TrimSpace(r.FormValue("full_name")),
	}
	if _, err := v.api.Register(r.Context(), req); err != nil {
		v.renderPartial(w, "form-error", map[string]string{"Error": backendMessage(err, "Registration failed")})
		return
	}

	w.Header().Set("HX-Redirect", "/")
	w.WriteHeader(http.StatusOK)
}

func (v *View) Logout(w http.ResponseWriter, r *http.Request) {
	v.sess.Clear()
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (v *View) ChangePasswordPage(w http.ResponseWriter, r *http.Request) {
	v.render(w, "change_password.html", v.baseData("Change password — BlueMoon Fees"))
}

func (v *View) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	p := v.sess.Profile()
	if p == nil {
		http.Error(w, "no active session", http.StatusUnauthorized)
		return
	}

	oldPassword := r.FormValue("old_password")
	newPassword := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	switch {
	case oldPassword == "" || newPassword == "":
		v.renderPartial(w, "form-error", map[string]string{"Error": "All fields are required"})
		return
	case len(newPassword) < 6:
		v.renderPartial(w, "form-error", map[string]string{"Error": "New password must be at least 6 characters"})
		return
	case newPassword != confirm:
		v.renderPartial(w, "form-error", map[string]string{"Error": "Passwords do not match"})
		return
	}

	if err := v.api.ChangePassword(r.Context(), p.UserID, oldPassword, newPassword); err != nil {
		v.renderPartial(w, "form-error", map[string]string{"Error": backendMessage(err, "Password change failed")})
		return
	}

	v.renderPartial(w, "form-success", map[string]string{"Message": "Password changed"})
}
