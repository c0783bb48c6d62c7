// Package httpapi exposes the REST surface: registration, cookie-session
// login, the authorization gate, and the task/account CRUD routes behind it.
package httpapi

import (
	"context"
	"io"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/taskdeck/internal/auth"
	"github.com/dmitrymomot/taskdeck/internal/cookie"
	"github.com/dmitrymomot/taskdeck/internal/session"
	"github.com/dmitrymomot/taskdeck/internal/storage"
)

// sessionCookieName is the cookie carrying the signed session token.
const sessionCookieName = "taskdeck_session"

// TaskRepository is the persistence interface consumed by the task routes.
type TaskRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]storage.Task, error)
	Create(ctx context.Context, task storage.Task) error
	Update(ctx context.Context, id uuid.UUID, upd storage.TaskUpdate) (storage.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AccountRepository is the persistence interface consumed by the account routes.
type AccountRepository interface {
	List(ctx context.Context) ([]storage.Account, error)
	Create(ctx context.Context, account storage.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// API holds the dependencies needed by the REST handlers.
type API struct {
	auth     *auth.Service
	sessions *session.Manager
	cookies  *cookie.Manager
	tasks    TaskRepository
	accounts AccountRepository

	log          *slog.Logger
	cors         CORSConfig
	healthchecks []func(context.Context) error
}

// Option configures the API instance.
type Option func(*API)

// WithLogger sets the structured logger for request and error logging.
// If not set, logs are discarded.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) {
		if log != nil {
			a.log = log
		}
	}
}

// WithCORS sets the CORS policy applied to every route.
func WithCORS(cfg CORSConfig) Option {
	return func(a *API) {
		a.cors = cfg
	}
}

// WithHealthchecks registers readiness probes exposed on /ready.
func WithHealthchecks(checks ...func(context.Context) error) Option {
	return func(a *API) {
		a.healthchecks = append(a.healthchecks, checks...)
	}
}

// New creates a new API instance.
func New(
	authSvc *auth.Service,
	sessions *session.Manager,
	cookies *cookie.Manager,
	tasks TaskRepository,
	accounts AccountRepository,
	opts ...Option,
) *API {
	a := &API{
		auth:     authSvc,
		sessions: sessions,
		cookies:  cookies,
		tasks:    tasks,
		accounts: accounts,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		cors:     DefaultCORSConfig(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Router returns a chi.Router with all routes mounted. Public routes are
// registration, login, the auth probe, and the health endpoints; everything
// else sits behind the authorization gate.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(a.logRequests)
	r.Use(corsMiddleware(a.cors))

	r.Get("/live", a.Liveness)
	r.Get("/ready", a.Readiness)

	r.Post("/register", a.Register)
	r.Post("/login", a.Login)
	r.Post("/logout", a.Logout)
	r.Get("/check-auth", a.CheckAuth)

	r.Route("/tasks", func(r chi.Router) {
		r.Use(a.RequireAuth)
		r.Get("/", a.ListTasks)
		r.Post("/", a.CreateTask)
		r.Put("/{taskID}", a.UpdateTask)
		r.Delete("/{taskID}", a.DeleteTask)
	})

	r.Route("/api/accounts", func(r chi.Router) {
		r.Use(a.RequireAuth)
		r.Get("/", a.ListAccounts)
		r.Post("/", a.CreateAccount)
		r.Delete("/{accountID}", a.DeleteAccount)
	})

	return r
}
