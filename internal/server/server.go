package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bluemoon/fees-admin/internal/api"
	"github.com/bluemoon/fees-admin/internal/config"
	"github.com/bluemoon/fees-admin/internal/handler"
	"github.com/bluemoon/fees-admin/internal/middleware"
	"github.com/bluemoon/fees-admin/internal/session"
	"github.com/bluemoon/fees-admin/internal/store"
)

// Server owns the session, the backend client, and the view layer, and
// assembles them into the route table.
type Server struct {
	db          *sql.DB
	sess        *session.Store
	apiClient   *api.Client
	view        *handler.View
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, cfg *config.Config, logger *slog.Logger) *Server {
	sess := session.New(store.NewStateStore(db), logger.With("component", "session"))
	apiClient := api.NewClient(cfg.APIBaseURL, sess, logger.With("component", "api"),
		api.WithOnUnauthorized(func() {
			logger.Warn("backend rejected the session token, signed out")
		}))
	view := handler.NewView(apiClient, sess, cfg.NotificationPoll, logger.With("component", "view"))

	return &Server{
		db:          db,
		sess:        sess,
		apiClient:   apiClient,
		view:        view,
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("GET /login", s.view.LoginPage)
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.view.Login))
	outerMux.HandleFunc("GET /register", s.view.RegisterPage)
	outerMux.HandleFunc("POST /register", s.rateLimitedHandler(s.view.Register))
	outerMux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sess)
	outerMux.Handle("/", authMiddleware(protectedMux))

	chain := middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
	return middleware.RequestID(chain)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /logout", s.view.Logout)
	mux.HandleFunc("GET /password", s.view.ChangePasswordPage)
	mux.HandleFunc("POST /password", s.view.ChangePassword)

	// Page routes — full layout
	mux.HandleFunc("GET /", s.view.Dashboard)
	mux.HandleFunc("GET /households", s.view.HouseholdsPage)
	mux.HandleFunc("GET /households/{id}", s.view.HouseholdDetail)
	mux.HandleFunc("GET /fees", s.view.FeesPage)
	mux.HandleFunc("GET /payments", s.view.PaymentsPage)
	mux.HandleFunc("GET /statistics", s.view.StatisticsPage)
	mux.HandleFunc("GET /notifications", s.view.NotificationsPage)

	// Household partials (HTMX)
	mux.HandleFunc("GET /partials/households", s.view.HouseholdList)
	mux.HandleFunc("GET /partials/households/new", s.view.HouseholdNewForm)
	mux.HandleFunc("GET /partials/households/{id}/edit", s.view.HouseholdEditForm)
	mux.HandleFunc("GET /partials/households/{id}/confirm-delete", s.view.HouseholdConfirmDelete)
	mux.HandleFunc("POST /partials/households", s.view.HouseholdCreate)
	mux.HandleFunc("PUT /partials/households/{id}", s.view.HouseholdUpdate)
	mux.HandleFunc("DELETE /partials/households/{id}", s.view.HouseholdDelete)
	mux.HandleFunc("POST /partials/households/{id}/activate", s.view.HouseholdActivate)

	// Fee partials (HTMX); anyone may propose a fee, only admins change
	// existing ones
	adminOnly := middleware.RequireAdmin(s.sess)
	mux.HandleFunc("GET /partials/fees", s.view.FeeList)
	mux.HandleFunc("GET /partials/fees/new", s.view.FeeNewForm)
	mux.Handle("GET /partials/fees/{id}/edit", adminOnly(http.HandlerFunc(s.view.FeeEditForm)))
	mux.HandleFunc("POST /partials/fees", s.view.FeeCreate)
	mux.Handle("PUT /partials/fees/{id}", adminOnly(http.HandlerFunc(s.view.FeeUpdate)))
	mux.Handle("POST /partials/fees/{id}/toggle", adminOnly(http.HandlerFunc(s.view.FeeToggleStatus)))
	mux.Handle("DELETE /partials/fees/{id}", adminOnly(http.HandlerFunc(s.view.FeeDelete)))

	// Payment partials (HTMX)
	mux.HandleFunc("GET /partials/payments", s.view.PaymentList)
	mux.HandleFunc("GET /partials/payments/new", s.view.PaymentNewForm)
	mux.HandleFunc("GET /partials/payments/pickers/households", s.view.HouseholdPicker)
	mux.HandleFunc("GET /partials/payments/pickers/fees", s.view.FeePicker)
	mux.HandleFunc("GET /partials/payments/{id}/edit", s.view.PaymentEditForm)
	mux.HandleFunc("POST /partials/payments", s.view.PaymentCreate)
	mux.HandleFunc("PUT /partials/payments/{id}", s.view.PaymentUpdate)
	mux.HandleFunc("DELETE /partials/payments/{id}", s.view.PaymentDelete)
	mux.HandleFunc("POST /partials/payments/{id}/verify", s.view.PaymentVerify)
	mux.HandleFunc("POST /partials/payments/{id}/unverify", s.view.PaymentUnverify)

	// Statistics partial (HTMX)
	mux.HandleFunc("GET /partials/statistics", s.view.StatisticsPanel)

	// Notification partials (HTMX polling)
	mux.HandleFunc("GET /partials/notifications/bell", s.view.NotificationBell)
	mux.HandleFunc("POST /partials/notifications/{id}/read", s.view.NotificationRead)

	// User management — admin only
	mux.Handle("GET /users", adminOnly(http.HandlerFunc(s.view.UsersPage)))
	mux.Handle("GET /partials/users", adminOnly(http.HandlerFunc(s.view.UserList)))
	mux.Handle("GET /partials/users/new", adminOnly(http.HandlerFunc(s.view.UserNewForm)))
	mux.Handle("GET /partials/users/{id}/edit", adminOnly(http.HandlerFunc(s.view.UserEditForm)))
	mux.Handle("POST /partials/users", adminOnly(http.HandlerFunc(s.view.UserCreate)))
	mux.Handle("PUT /partials/users/{id}", adminOnly(http.HandlerFunc(s.view.UserUpdate)))
	mux.Handle("PUT /partials/users/{id}/role", adminOnly(http.HandlerFunc(s.view.UserSetRole)))
	mux.Handle("PUT /partials/users/{id}/status", adminOnly(http.HandlerFunc(s.view.UserSetStatus)))
	mux.Handle("DELETE /partials/users/{id}", adminOnly(http.HandlerFunc(s.view.UserDelete)))
}
