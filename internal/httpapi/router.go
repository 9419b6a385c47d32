package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"daily-quest/internal/auth"
	"daily-quest/internal/metrics"
	"daily-quest/internal/service"
)

type API struct {
	Auth       *auth.Manager
	Users      *service.UserService
	Catalog    *service.CatalogService
	Selections *service.SelectionService
	Missions   *service.MissionService
	Progress   *service.ProgressService
	Projects   *service.ProjectService
	Quotes     *service.QuoteService
	Metrics    *metrics.Metrics

	SecureCookies      bool
	MainProjectKeyword string
	LoginRatePerMinute int
	Now                func() time.Time

	loginLimiter *ipLimiter
}

func (a *API) Router() http.Handler {
	if a.Now == nil {
		a.Now = time.Now
	}
	if a.LoginRatePerMinute > 0 {
		a.loginLimiter = newIPLimiter(a.LoginRatePerMinute)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(a.loggingMiddleware)

	r.Get("/health", a.handleHealth)
	if a.Metrics != nil {
		r.Handle("/metrics", a.Metrics.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(a.rateLimitMiddleware).Post("/register", a.handleRegister)
		r.With(a.rateLimitMiddleware).Post("/login", a.handleLogin)
		r.Post("/logout", a.handleLogout)
	})

	r.Group(func(r chi.Router) {
		r.Use(a.authMiddleware)
		r.Get("/me", a.handleMe)

		r.Get("/catalog", a.handleListCatalog)
		r.Get("/catalog/grouped", a.handleGroupedCatalog)

		r.Route("/selections", func(r chi.Router) {
			r.Get("/", a.handleListSelections)
			r.Post("/", a.handleAddSelection)
			r.Delete("/", a.handleClearSelections)
			r.Post("/swap", a.handleSwapSelections)
			r.Patch("/{id}/priority", a.handleReorderSelection)
			r.Delete("/{id}", a.handleRemoveSelection)
		})
		r.Route("/missions", func(r chi.Router) {
			r.Get("/", a.handleListMissions)
			r.Post("/", a.handleCreateMission)
			r.Post("/generate", a.handleGenerateMissions)
		})
		r.Route("/progress", func(r chi.Router) {
			r.Get("/", a.handleListProgress)
			r.Post("/", a.handleRecordProgress)
			r.Get("/summary", a.handleProgressSummary)
		})
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", a.handleListProjects)
			r.Post("/", a.handleCreateProject)
			r.Patch("/{id}/amount", a.handleUpdateProjectAmount)
			r.Get("/{id}/tasks", a.handleListProjectTasks)
			r.Post("/{id}/tasks", a.handleAddProjectTask)
			r.Patch("/{id}/tasks/{taskID}/status", a.handleSetProjectTaskStatus)
		})
		r.Get("/quotes/random", a.handleRandomQuote)
	})

	return r
}
