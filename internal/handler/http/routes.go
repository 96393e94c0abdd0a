package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(withGZip)

	// infrastructure routes
	router.Get("/livez", h.livez)
	router.Get("/readyz", h.readyz)
	router.Handle("/static/*", h.static())

	router.Group(func(r chi.Router) {
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}
		r.Use(h.withFlashes)
		r.Use(h.withSession)

		// public pages
		r.Get("/", h.home)
		r.Get("/home", h.home)
		r.Get("/about", h.about)
		r.Get("/user/{username}", h.userPosts)
		r.Get("/post/{id}", h.showPost)
		r.Post("/post/{id}", h.showPost)

		// pages that make no sense once logged in
		r.Group(func(r chi.Router) {
			r.Use(h.anonymousOnly)

			r.Get("/register", h.register)
			r.Post("/register", h.register)
			r.Get("/login", h.login)
			r.Post("/login", h.login)
			r.Get("/reset_password", h.resetRequest)
			r.Post("/reset_password", h.resetRequest)
			r.Get("/reset_password/{token}", h.resetToken)
			r.Post("/reset_password/{token}", h.resetToken)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.loginRequired)

			r.Get("/logout", h.logout)
			r.Get("/reauthenticate", h.reauthenticate)
			r.Post("/reauthenticate", h.reauthenticate)
			r.Get("/post/new", h.newPost)
			r.Post("/post/new", h.newPost)
			r.Get("/post/{id}/update", h.updatePost)
			r.Post("/post/{id}/update", h.updatePost)
			r.Post("/post/{id}/delete", h.deletePost)

			r.Group(func(r chi.Router) {
				r.Use(h.freshLoginRequired)

				r.Get("/account", h.account)
				r.Post("/account", h.account)
			})
		})
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.methodNotAllowed)

	return router
}
