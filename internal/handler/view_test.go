package handler

import (
	"encoding/json"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/bluemoon/fees-admin/internal/api"
	"github.com/bluemoon/fees-admin/internal/database"
	"github.com/bluemoon/fees-admin/internal/model"
	"github.com/bluemoon/fees-admin/internal/session"
	"github.com/bluemoon/fees-admin/internal/store"
)

func newTestView(t *testing.T, backend http.Handler) *View {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sess := session.New(store.NewStateStore(db), logger)

	ts := httptest.NewServer(backend)
	t.Cleanup(ts.Close)

	tmpl := template.Must(template.New("").Funcs(templateFuncs()).ParseGlob("../../web/templates/*.html"))
	return &View{
		api:       api.NewClient(ts.URL, sess, logger),
		sess:      sess,
		templates: tmpl,
		logger:    logger,
		poll:      30 * time.Second,
	}
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestListFetchFailureRendersInlineRetry(t *testing.T) {
	v := newTestView(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusInternalServerError)
	}))

	req := httptest.NewRequest(http.MethodGet, "/partials/households?q=abc", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	v.HouseholdList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 so the alert gets swapped in", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "alert-error") {
		t.Error("inline alert missing from response")
	}
	if !strings.Contains(body, `hx-get="/partials/households?q=abc"`) {
		t.Errorf("retry control does not re-issue the original request:\n%s", body)
	}
}

func TestPageFetchFailureRendersErrorPage(t *testing.T) {
	v := newTestView(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusInternalServerError)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	v.Dashboard(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Try again") {
		t.Error("error page has no retry link")
	}
}

func TestCreateRejectionTargetsFormFeedback(t *testing.T) {
	v := newTestView(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "address already registered", http.StatusBadRequest)
	}))

	req := formRequest(http.MethodPost, "/partials/households", url.Values{
		"owner_name": {"Tran Van A"},
		"address":    {"12 Lane 3"},
	})
	rec := httptest.NewRecorder()
	v.HouseholdCreate(rec, req)

	if got := rec.Header().Get("HX-Retarget"); got != "#household-form-feedback" {
		t.Errorf("HX-Retarget = %q, want #household-form-feedback", got)
	}
	if !strings.Contains(rec.Body.String(), "address already registered") {
		t.Error("backend message missing from feedback")
	}
}

func TestFormValidationTargetsFormFeedback(t *testing.T) {
	v := newTestView(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend should not be called for an invalid form")
	}))

	req := formRequest(http.MethodPost, "/partials/households", url.Values{
		"owner_name": {""},
		"address":    {""},
	})
	rec := httptest.NewRecorder()
	v.HouseholdCreate(rec, req)

	if got := rec.Header().Get("HX-Retarget"); got != "#household-form-feedback" {
		t.Errorf("HX-Retarget = %q, want #household-form-feedback", got)
	}
}

func TestFeeFormAcceptsZeroAmount(t *testing.T) {
	var posted model.Fee
	v := newTestView(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
				t.Fatalf("decode posted fee: %v", err)
			}
			posted.ID = 1
			json.NewEncoder(w).Encode(posted)
		default:
			w.Write([]byte("[]"))
		}
	}))

	req := formRequest(http.MethodPost, "/partials/fees", url.Values{
		"name":   {"Community cleanup"},
		"amount": {"0"},
		"type":   {"VOLUNTARY"},
	})
	rec := httptest.NewRecorder()
	v.FeeCreate(rec, req)

	if rec.Header().Get("HX-Retarget") != "" {
		t.Fatalf("zero amount was rejected: %s", rec.Body.String())
	}
	if posted.Name != "Community cleanup" || posted.Amount != 0 {
		t.Errorf("posted fee = %+v, want zero-amount cleanup fee", posted)
	}
}

func TestFeeFormRejectsNegativeAmount(t *testing.T) {
	v := newTestView(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend should not be called for a negative amount")
	}))

	req := formRequest(http.MethodPost, "/partials/fees", url.Values{
		"name":   {"Broken"},
		"amount": {"-5"},
	})
	rec := httptest.NewRecorder()
	v.FeeCreate(rec, req)

	if got := rec.Header().Get("HX-Retarget"); got != "#fee-form-feedback" {
		t.Errorf("HX-Retarget = %q, want #fee-form-feedback", got)
	}
}
