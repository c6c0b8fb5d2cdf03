package ui

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bearpath/app"
	"bearpath/domain/core"
	"bearpath/internal/errors"
)

// App represents the web application
type App struct {
	router   *chi.Mux
	desk     *app.DeskService
	phoneLog *app.PhoneLogService
	port     string
}

// Config holds web application configuration
type Config struct {
	Port string
}

// NewApp creates a new web application
func NewApp(config Config, desk *app.DeskService, phoneLog *app.PhoneLogService) *App {
	a := &App{
		router:   chi.NewRouter(),
		desk:     desk,
		phoneLog: phoneLog,
		port:     config.Port,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Roster endpoints
	a.router.Get("/api/roster", a.handleRoster)
	a.router.Get("/api/roster/summary", a.handleRosterSummary)
	a.router.Get("/api/roster/export.csv", a.handleRosterExport)
	a.router.Post("/api/roster/sync", a.handleRosterSync)
	a.router.Post("/api/roster/recompute", a.handleRosterRecompute)
	a.router.Post("/api/roster/{id}/edit", a.handleRosterEdit)

	// Phone log endpoints
	a.router.Get("/api/calls", a.handleCallList)
	a.router.Get("/api/calls/export.csv", a.handleCallExport)
	a.router.Post("/api/calls", a.handleCallCreate)
	a.router.Put("/api/calls/{id}", a.handleCallUpdate)
	a.router.Post("/api/calls/{id}/done", a.handleCallDone)
	a.router.Delete("/api/calls/{id}", a.handleCallDelete)
	a.router.Get("/api/calls/{id}/email", a.handleCallEmail)
}

// Router exposes the configured handler, mainly for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.port
	log.Printf("[UI] Starting server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[UI] Failed to encode response: %v", err)
	}
}

// writeError maps domain errors onto HTTP status codes.
func (a *App) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	case core.IsImportError(err), core.IsValidationError(err):
		status = http.StatusBadRequest
	}
	a.writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
