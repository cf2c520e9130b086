package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes wires every endpoint. Read endpoints run behind the identify
// middleware so anonymous requests pass through; endpoints that only make
// sense for a known caller run behind authenticate.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Handle("/metrics", promhttp.Handler())

	// Token lifecycle; no session required.
	r.Post("/register/", handlers.authHandler.register())
	r.Post("/login/", handlers.authHandler.login())
	r.Post("/refresh/", handlers.authHandler.refresh())
	r.Post("/revoke/", handlers.authHandler.revoke())
	r.Post("/verify/", handlers.authHandler.verify())

	// Authenticated-only routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		r.Get("/profile/", handlers.authHandler.profile())
		r.Get("/logs/", handlers.logHandler.list())
	})

	// Entry and comment routes; visibility decided per resource.
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.identify)

		r.Get("/entries/", handlers.entryHandler.list())
		r.Post("/entries/", handlers.entryHandler.create())

		// Entries are addressable by id, slug, or short-url id.
		entryDetail := func(r chi.Router) {
			r.Get("/", handlers.entryHandler.get())
			r.Put("/", handlers.entryHandler.update())
			r.Patch("/", handlers.entryHandler.update())
			r.Delete("/", handlers.entryHandler.del())

			r.Get("/comments/", handlers.commentHandler.listForEntry())
			r.Post("/comments/", handlers.commentHandler.createForEntry())

			r.Get("/comments/{commentNumber}/", handlers.commentHandler.get())
			r.Put("/comments/{commentNumber}/", handlers.commentHandler.update())
			r.Patch("/comments/{commentNumber}/", handlers.commentHandler.update())
			r.Delete("/comments/{commentNumber}/", handlers.commentHandler.del())
		}
		r.Route("/entries/slug/{slug}", entryDetail)
		r.Route("/entries/short/{shortURLID}", entryDetail)
		r.Route("/entries/{entryID}", entryDetail)

		r.Get("/comments/{commentID}/", handlers.commentHandler.get())
		r.Put("/comments/{commentID}/", handlers.commentHandler.update())
		r.Patch("/comments/{commentID}/", handlers.commentHandler.update())
		r.Delete("/comments/{commentID}/", handlers.commentHandler.del())
	})
}
