package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	router.Get("/api/version", h.getAppVersion)
	router.Get("/api/status", h.getStatus)
	router.Get("/api/queue", h.getQueue)

	router.Post("/api/session", h.signIn)
	router.Delete("/api/session", h.signOut)

	router.Post("/api/sync", h.triggerSync)

	router.Get("/api/conflicts", h.getConflicts)
	router.Post("/api/conflicts/{conflictID}/acknowledge", h.acknowledgeConflict)

	router.Post("/api/migration", h.startMigration)
	router.Get("/api/migration/{migrationID}", h.getMigrationProgress)
	router.Post("/api/migration/{migrationID}/rollback", h.rollbackMigration)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
