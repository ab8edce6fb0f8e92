package handler

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bluemoon/fees-admin/internal/api"
	"github.com/bluemoon/fees-admin/internal/middleware"
	"github.com/bluemoon/fees-admin/internal/model"
	"github.com/bluemoon/fees-admin/internal/session"
)

// View renders the admin screens. Every screen reads through the backend
// API client; nothing is served from local state except the session.
type View struct {
	api       *api.Client
	sess      *session.Store
	templates *template.Template
	logger    *slog.Logger
	poll      time.Duration
}

func NewView(client *api.Client, sess *session.Store, poll time.Duration, logger *slog.Logger) *View {
	tmpl := template.Must(template.New("").Funcs(templateFuncs()).ParseGlob("web/templates/*.html"))
	return &View{
		api:       client,
		sess:      sess,
		templates: tmpl,
		logger:    logger,
		poll:      poll,
	}
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(v float64) string {
			return humanize.CommafWithDigits(v, 0) + " VND"
		},
		"comma": func(v int64) string {
			return humanize.Comma(v)
		},
		"reltime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return humanize.Time(t)
		},
		"shortdate": func(d model.Date) string {
			if d.IsZero() {
				return "—"
			}
			return d.Format("02 Jan 2006")
		},
		"isodate": func(d model.Date) string {
			if d.IsZero() {
				return ""
			}
			return d.Format("2006-01-02")
		},
	}
}

// baseData carries the fields the layout always needs.
func (v *View) baseData(title string) map[string]any {
	data := map[string]any{
		"Title":       title,
		"IsAdmin":     v.sess.IsAdmin(),
		"PollSeconds": int(v.poll.Seconds()),
	}
	if p := v.sess.Profile(); p != nil {
		data["Profile"] = p
	}
	return data
}

func (v *View) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := v.templates.ExecuteTemplate(w, name, data); err != nil {
		v.logger.Error("template error", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func (v *View) renderPartial(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := v.templates.ExecuteTemplate(w, name, data); err != nil {
		v.logger.Error("template error", "template", name, "error", err)
		fmt.Fprintf(w, `<div class="alert alert-error">Template error</div>`)
	}
}

// fail translates backend failures into responses. An expired token sends
// the browser back to login. HTMX requests get an inline alert with a
// retry control aimed at the same URL; HTMX only swaps 2xx responses, so
// the alert is served with status 200. Full page loads get an error page.
func (v *View) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		middleware.RedirectToLogin(w, r)
		return
	}
	v.logger.Error(msg, "error", err)

	if r.Header.Get("HX-Request") == "true" {
		v.renderPartial(w, "load-error", map[string]string{
			"Message": msg,
			"URL":     r.URL.RequestURI(),
		})
		return
	}

	data := v.baseData("Something went wrong — BlueMoon Fees")
	data["Message"] = msg
	data["URL"] = r.URL.RequestURI()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if terr := v.templates.ExecuteTemplate(w, "error.html", data); terr != nil {
		v.logger.Error("template error", "template", "error.html", "error", terr)
	}
}

// formError reports a rejected form post into the form's own feedback div.
// The form targets its list container, so the response retargets the swap.
func (v *View) formError(w http.ResponseWriter, selector, msg string) {
	w.Header().Set("HX-Retarget", selector)
	w.Header().Set("HX-Reswap", "innerHTML")
	v.renderPartial(w, "form-error", map[string]string{"Error": msg})
}

// backendMessage pulls a human-readable message out of a backend error for
// form feedback. Unknown failures get a generic line.
func backendMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Body != "" && apiErr.StatusCode < 500 {
		return apiErr.Body
	}
	return fallback
}
